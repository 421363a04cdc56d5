/*
directory.go - Worker directory lookups and the authentication gate

PURPOSE:
  The Directory is the in-memory view of the worker collection: lookup by
  passport number, search/filter for the admin console, and the flat
  credential check used at login.

AUTHENTICATION MODEL:
  Credentials are passport number + birth date (YYYYMMDD), compared in
  plain text against the directory. A fixed sentinel pair authenticates to
  a synthetic administrative identity that is never stored in the
  directory. There is no hashing, salting or lockout - insecure by design,
  inherited from the single-user-per-device portal this serves. Do not
  reuse this gate behind a multi-tenant deployment without replacing it.

FAILURE MODE:
  A single ErrInvalidCredentials covers both "unknown passport" and
  "wrong birth date" so the API cannot be used to enumerate identifiers.

SEE ALSO:
  - types.go: The Worker record
  - api/auth.go: Session tokens issued after this gate passes
*/
package worker

import (
	"errors"
	"strings"
)

// ErrInvalidCredentials is returned for any credential mismatch.
// Deliberately generic: callers must not distinguish unknown identifiers
// from wrong secrets.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotFound is returned when a passport number is not in the directory.
var ErrNotFound = errors.New("worker not found")

// Sentinel administrative credentials. These bypass the directory and
// yield the synthetic admin identity below.
const (
	adminSentinelID     = "ALAN"
	adminSentinelSecret = "ICH"
)

// AdminIdentity returns the synthetic administrative record. It is never
// persisted with the worker collection.
func AdminIdentity() Worker {
	return Worker{
		PassportNumber: adminSentinelID,
		BirthDate:      adminSentinelSecret,
		Name:           "ADMIN: ALAN",
		Employer:       "pan_asia",
		WorkerID:       "ADMIN-01",
		BloodType:      "N/A",
		PassportExpiry: "9999-12-31",
		EntryDate:      "9999-12-31",
		EntryType:      EntryAbroad,
		Emergency:      EmergencyContact{Name: "Support", Relationship: "HQ", Phone: "0800"},
		Role:           RoleAdmin,
	}
}

// =============================================================================
// DIRECTORY
// =============================================================================

// Directory is an ordered worker collection. Order is preserved so list
// output is stable across save/load cycles.
type Directory struct {
	workers []Worker
}

// NewDirectory copies the given collection into a directory.
func NewDirectory(workers []Worker) *Directory {
	d := &Directory{workers: make([]Worker, len(workers))}
	copy(d.workers, workers)
	return d
}

// All returns a copy of the collection in insertion order.
func (d *Directory) All() []Worker {
	out := make([]Worker, len(d.workers))
	copy(out, d.workers)
	return out
}

// Len returns the number of workers in the directory.
func (d *Directory) Len() int { return len(d.workers) }

// Find looks a worker up by passport number, case-insensitively.
func (d *Directory) Find(passport string) (Worker, error) {
	key := strings.ToUpper(strings.TrimSpace(passport))
	for _, w := range d.workers {
		if w.Key() == key {
			return w.Clone(), nil
		}
	}
	return Worker{}, ErrNotFound
}

// Replace swaps in a new version of an existing record, matched by
// passport number. The collection assumes a single logical writer;
// the last write wins.
func (d *Directory) Replace(updated Worker) error {
	key := updated.Key()
	for i, w := range d.workers {
		if w.Key() == key {
			d.workers[i] = updated.Clone()
			return nil
		}
	}
	return ErrNotFound
}

// Search filters the collection for the admin console. term matches name
// or passport number as a case-insensitive substring; employer filters by
// employer ID, with "" or "all" meaning no filter.
func (d *Directory) Search(term, employer string) []Worker {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []Worker
	for _, w := range d.workers {
		if term != "" &&
			!strings.Contains(strings.ToLower(w.Name), term) &&
			!strings.Contains(strings.ToLower(w.PassportNumber), term) {
			continue
		}
		if employer != "" && employer != "all" && w.Employer != employer {
			continue
		}
		out = append(out, w.Clone())
	}
	return out
}

// TotalPoints sums points across the directory (the admin console's
// "active rewards" figure).
func (d *Directory) TotalPoints() int {
	var total int
	for _, w := range d.workers {
		total += w.Points
	}
	return total
}

// =============================================================================
// AUTHENTICATION GATE
// =============================================================================

// Authenticate checks credentials against the directory. Both inputs are
// trimmed. The sentinel pair always wins, regardless of directory
// contents (including an empty directory). Otherwise the identifier is
// matched case-insensitively and the secret verbatim; the first match is
// returned.
func (d *Directory) Authenticate(idInput, secretInput string) (Worker, error) {
	id := strings.TrimSpace(idInput)
	secret := strings.TrimSpace(secretInput)

	if strings.ToUpper(id) == adminSentinelID && secret == adminSentinelSecret {
		return AdminIdentity(), nil
	}

	key := strings.ToUpper(id)
	for _, w := range d.workers {
		if w.Key() == key && w.BirthDate == secret {
			return w.Clone(), nil
		}
	}
	return Worker{}, ErrInvalidCredentials
}
