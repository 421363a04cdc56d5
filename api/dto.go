/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the internal
  domain model. The worker's birth date (the login secret) is the one
  field that never appears in a response DTO.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry go-playground/validator struct tags; handlers run
  them through a shared Validate instance before touching domain logic.
*/
package api

import (
	"github.com/pan-asia/worker-portal/assistant"
	"github.com/pan-asia/worker-portal/content"
	"github.com/pan-asia/worker-portal/worker"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// LoginRequest carries the credential pair.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Secret     string `json:"secret" validate:"required"`
}

// BloodTypeRequest updates the health card's blood type.
type BloodTypeRequest struct {
	BloodType string `json:"blood_type" validate:"required"`
}

// MedicalRecordRequest appends a health history entry.
type MedicalRecordRequest struct {
	Date        string `json:"date" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=checkup treatment"`
	Description string `json:"description" validate:"required"`
}

// ChatRequest is one turn in the assistant conversation. The transcript
// is client-held; each request replays it.
type ChatRequest struct {
	Prompt  string       `json:"prompt" validate:"required"`
	Locale  string       `json:"locale" validate:"omitempty,oneof=en zh"`
	History []MessageDTO `json:"history" validate:"dive"`
}

// MessageDTO is one transcript line.
type MessageDTO struct {
	Speaker string `json:"speaker" validate:"required,oneof=user model"`
	Text    string `json:"text" validate:"required"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// WorkerDTO is the worker record as exposed over the API. The birth date
// secret is deliberately absent.
type WorkerDTO struct {
	PassportNumber string                  `json:"passport_number"`
	Name           string                  `json:"name"`
	Employer       *EmployerDTO            `json:"employer,omitempty"`
	WorkerID       string                  `json:"worker_id"`
	BloodType      string                  `json:"blood_type"`
	Allergies      []string                `json:"allergies,omitempty"`
	PassportExpiry string                  `json:"passport_expiry"`
	EntryDate      string                  `json:"entry_date"`
	EntryType      string                  `json:"entry_type"`
	Dormitory      string                  `json:"dormitory,omitempty"`
	RoomNumber     string                  `json:"room_number,omitempty"`
	Points         int                     `json:"points"`
	LastLoginMonth string                  `json:"last_login_month,omitempty"`
	ReadPromotions []string                `json:"read_promotions"`
	MedicalHistory []worker.MedicalRecord  `json:"medical_history"`
	Emergency      worker.EmergencyContact `json:"emergency_contact"`
	Role           string                  `json:"role"`
}

// EmployerDTO is a resolved employer registry entry.
type EmployerDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameZH string `json:"name_zh"`
}

// LoginResponseDTO is returned on successful authentication.
type LoginResponseDTO struct {
	Token        string    `json:"token"`
	Worker       WorkerDTO `json:"worker"`
	BonusAwarded bool      `json:"bonus_awarded"`
}

// DashboardDTO is the reminder summary on the worker's home screen.
type DashboardDTO struct {
	PassportExpiry   string `json:"passport_expiry"`
	PassportDays     int    `json:"passport_days"`
	NextCheckup      string `json:"next_checkup,omitempty"` // empty: no further statutory checkup
	CheckupDays      int    `json:"checkup_days"`           // meaningful only when next_checkup is set
	UnreadPromotions int    `json:"unread_promotions"`
	TotalPromotions  int    `json:"total_promotions"`
}

// ProfileDTO combines the record with its dashboard summary.
type ProfileDTO struct {
	Worker    WorkerDTO    `json:"worker"`
	Dashboard DashboardDTO `json:"dashboard"`
}

// PromotionDTO is a catalog entry plus the caller's read state.
type PromotionDTO struct {
	content.Promotion
	Read bool `json:"read"`
}

// PromotionReadDTO is returned after confirming a read.
type PromotionReadDTO struct {
	PromotionID  string `json:"promotion_id"`
	Read         bool   `json:"read"`
	BonusAwarded bool   `json:"bonus_awarded"`
	Points       int    `json:"points"`
}

// ChatResponseDTO carries the assistant's reply.
type ChatResponseDTO struct {
	Reply string `json:"reply"`
}

// AdminWorkerDTO is the directory row shown on the admin console.
type AdminWorkerDTO struct {
	PassportNumber string       `json:"passport_number"`
	Name           string       `json:"name"`
	Employer       *EmployerDTO `json:"employer,omitempty"`
	Points         int          `json:"points"`
}

// AdminSummaryDTO aggregates the directory for the console header.
type AdminSummaryDTO struct {
	TotalWorkers  int `json:"total_workers"`
	TotalPoints   int `json:"total_points"`
	AwardedEvents int `json:"awarded_events"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployerDTO(id string) *EmployerDTO {
	emp, ok := worker.FindEmployer(id)
	if !ok {
		return nil
	}
	return &EmployerDTO{ID: emp.ID, Name: emp.Name, NameZH: emp.NameZH}
}

func toWorkerDTO(w worker.Worker) WorkerDTO {
	role := string(w.Role)
	if role == "" {
		role = string(worker.RoleWorker)
	}
	history := w.MedicalHistory
	if history == nil {
		history = []worker.MedicalRecord{}
	}
	read := w.ReadPromotions
	if read == nil {
		read = []string{}
	}
	return WorkerDTO{
		PassportNumber: w.PassportNumber,
		Name:           w.Name,
		Employer:       toEmployerDTO(w.Employer),
		WorkerID:       w.WorkerID,
		BloodType:      w.BloodType,
		Allergies:      w.Allergies,
		PassportExpiry: w.PassportExpiry,
		EntryDate:      w.EntryDate,
		EntryType:      string(w.EntryType),
		Dormitory:      w.Dormitory,
		RoomNumber:     w.RoomNumber,
		Points:         w.Points,
		LastLoginMonth: w.LastLoginMonth,
		ReadPromotions: read,
		MedicalHistory: history,
		Emergency:      w.Emergency,
		Role:           role,
	}
}

func toMessages(dtos []MessageDTO) []assistant.Message {
	msgs := make([]assistant.Message, len(dtos))
	for i, m := range dtos {
		msgs[i] = assistant.Message{Speaker: assistant.Speaker(m.Speaker), Text: m.Text}
	}
	return msgs
}
