/*
Package worker defines the worker data model and the credential directory.

PURPOSE:
  This package owns the WorkerRecord - the single source of truth for a
  migrant worker's identity, employment, health card and engagement state.
  Everything else in the system (entitlement dates, point awards, the HTTP
  API) operates on values of these types and hands the results back to a
  store for persistence.

KEY CONCEPTS IN THIS FILE (types.go):
  - Worker: The full worker record, keyed by passport number
  - MedicalRecord: An append-only health history entry
  - EntryType: Selects which statutory checkup schedule applies
  - Employer: Registry entry for the employer a worker is placed with

DESIGN PRINCIPLES:
  1. Value semantics: records are copied, never mutated in place; the
     caller persists the replacement
  2. Natural key: passport number, compared case-insensitively
  3. Append-only history: medical records are added newest-first and
     never edited or removed

SEE ALSO:
  - directory.go: Credential checks and directory lookups
  - seed.go: Bootstrap data for a fresh installation
  - engagement/: Point-award state transitions over Worker values
*/
package worker

import (
	"strings"
	"time"
)

// =============================================================================
// ENTRY TYPE - Which statutory medical checkup schedule applies
// =============================================================================

type EntryType string

const (
	// EntryAbroad marks a worker who entered from overseas. Checkups are
	// due at entry + 6, 18 and 30 months, then the schedule ends.
	EntryAbroad EntryType = "abroad"

	// EntryDomestic marks a domestic transfer. Checkups recur every 12
	// months from the entry date.
	EntryDomestic EntryType = "domestic"
)

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	return t == EntryAbroad || t == EntryDomestic
}

// =============================================================================
// ROLES
// =============================================================================

type Role string

const (
	RoleWorker Role = "worker"
	RoleAdmin  Role = "admin"
)

// =============================================================================
// MEDICAL RECORD - Append-only health history entry
// =============================================================================

type MedicalRecordType string

const (
	MedicalCheckup   MedicalRecordType = "checkup"
	MedicalTreatment MedicalRecordType = "treatment"
)

// MedicalRecord is immutable once created. ID generation is the caller's
// responsibility; uniqueness is not enforced here.
type MedicalRecord struct {
	ID            string            `json:"id"`
	Date          string            `json:"date"` // YYYY-MM-DD
	Type          MedicalRecordType `json:"type"`
	Description   string            `json:"description"`
	DescriptionZH string            `json:"description_zh,omitempty"`
}

// =============================================================================
// WORKER RECORD
// =============================================================================

// EmergencyContact is the person to call on the worker's behalf.
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// Worker is the full worker record. The passport number is the natural key
// and is compared uppercase everywhere. BirthDate doubles as the login
// secret (YYYYMMDD, compared verbatim) - a known limitation carried from
// the portal this backend serves.
type Worker struct {
	PassportNumber string           `json:"passportNumber"`
	BirthDate      string           `json:"birthDate"`
	Name           string           `json:"name"`
	Employer       string           `json:"employer"` // Employer ID
	WorkerID       string           `json:"workerId"`
	BloodType      string           `json:"bloodType"`
	Allergies      []string         `json:"allergies,omitempty"`
	PassportExpiry string           `json:"passportExpiry"` // YYYY-MM-DD
	EntryDate      string           `json:"entryDate"`      // YYYY-MM-DD
	EntryType      EntryType        `json:"entryType"`
	Dormitory      string           `json:"dormitory,omitempty"`
	RoomNumber     string           `json:"roomNumber,omitempty"`
	MedicalHistory []MedicalRecord  `json:"medicalHistory,omitempty"` // newest first
	ReadPromotions []string         `json:"readPromotions,omitempty"`
	Points         int              `json:"points"`
	LastLoginMonth string           `json:"lastLoginMonth,omitempty"` // YYYY-MM
	Emergency      EmergencyContact `json:"emergencyContact"`
	Role           Role             `json:"role,omitempty"`
}

// Key returns the canonical (uppercase) form of the passport number.
func (w Worker) Key() string {
	return strings.ToUpper(strings.TrimSpace(w.PassportNumber))
}

// IsAdmin reports whether the record carries the administrative role.
func (w Worker) IsAdmin() bool {
	return w.Role == RoleAdmin
}

// HasRead reports whether the worker has confirmed reading the promotion.
func (w Worker) HasRead(promotionID string) bool {
	for _, id := range w.ReadPromotions {
		if id == promotionID {
			return true
		}
	}
	return false
}

// EntryDateTime parses the entry date at midnight UTC. The zero time is
// returned for an empty or malformed date; callers treat that as "no
// schedule" rather than an error.
func (w Worker) EntryDateTime() time.Time {
	return ParseDate(w.EntryDate)
}

// PassportExpiryTime parses the passport expiry date, zero time if unset.
func (w Worker) PassportExpiryTime() time.Time {
	return ParseDate(w.PassportExpiry)
}

// Clone returns a deep copy of the record. The engagement transitions
// build their results on top of this so shared slices never alias.
func (w Worker) Clone() Worker {
	out := w
	if w.Allergies != nil {
		out.Allergies = append([]string(nil), w.Allergies...)
	}
	if w.MedicalHistory != nil {
		out.MedicalHistory = append([]MedicalRecord(nil), w.MedicalHistory...)
	}
	if w.ReadPromotions != nil {
		out.ReadPromotions = append([]string(nil), w.ReadPromotions...)
	}
	return out
}

// ParseDate parses a YYYY-MM-DD string at midnight UTC.
// Empty or malformed input yields the zero time.
func ParseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// =============================================================================
// EMPLOYER REGISTRY
// =============================================================================

// Employer is a registry entry; workers reference it by ID.
type Employer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameZH string `json:"name_zh"`
}

// BloodTypes is the fixed set of accepted blood type values.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-", "Unknown"}

// ValidBloodType reports whether bt is one of the accepted values.
func ValidBloodType(bt string) bool {
	for _, t := range BloodTypes {
		if t == bt {
			return true
		}
	}
	return false
}
