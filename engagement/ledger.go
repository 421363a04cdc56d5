/*
Package engagement is the points and read-state bookkeeping for workers.

PURPOSE:
  Pure state transitions (Worker, event) -> Worker'. Nothing here touches
  storage or the clock; callers pass values in, get new values back, and
  are responsible for persisting the replacement.

INVARIANTS:
  1. Points only increase, by exactly 1 per awarded event
  2. The read-promotion set only grows; there is no un-reading
  3. Transitions never mutate their input; results are deep copies
  4. At most one login bonus per calendar month per worker

KEY OPERATIONS:
  EvaluateLogin:        monthly login bonus, keyed by YYYY-MM
  ConfirmPromotionRead: reading bonus, idempotent per promotion
  SetBloodType:         field replacement, no award
  AppendMedicalRecord:  newest-first prepend, no award

SEE ALSO:
  - events.go: Append-only audit records for each award
  - worker/: The Worker value these transitions operate on
*/
package engagement

import (
	"github.com/pan-asia/worker-portal/worker"
)

// EvaluateLogin applies the monthly login bonus. If the worker has not
// yet logged in during yearMonth (YYYY-MM), the result carries one extra
// point and the stamped month, and awarded is true. Repeat logins in the
// same month return the worker unchanged.
//
// lastLoginMonth is overwritten, not validated for monotonicity: a
// client clock moving backwards can re-earn a bonus. Acceptable for a
// single-device deployment; revisit before putting a shared backend in
// front of untrusted clocks.
func EvaluateLogin(w worker.Worker, yearMonth string) (worker.Worker, bool) {
	if w.LastLoginMonth == yearMonth {
		return w, false
	}
	out := w.Clone()
	out.Points++
	out.LastLoginMonth = yearMonth
	return out, true
}

// ConfirmPromotionRead marks a promotion as read and awards the reading
// bonus. Idempotent: confirming an already-read promotion returns the
// worker unchanged, so rereading never pays twice.
func ConfirmPromotionRead(w worker.Worker, promotionID string) worker.Worker {
	if w.HasRead(promotionID) {
		return w
	}
	out := w.Clone()
	out.ReadPromotions = append(out.ReadPromotions, promotionID)
	out.Points++
	return out
}

// SetBloodType replaces the blood type. No validation beyond what the
// caller applies against worker.BloodTypes, and no point award.
func SetBloodType(w worker.Worker, newType string) worker.Worker {
	out := w.Clone()
	out.BloodType = newType
	return out
}

// AppendMedicalRecord prepends a record to the medical history. Newest
// first is a user-visible invariant. No dedup by ID is performed - the
// caller guarantees unique IDs - and no point is awarded.
func AppendMedicalRecord(w worker.Worker, rec worker.MedicalRecord) worker.Worker {
	out := w.Clone()
	out.MedicalHistory = append([]worker.MedicalRecord{rec}, out.MedicalHistory...)
	return out
}
