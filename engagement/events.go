/*
events.go - Append-only audit records for point awards

PURPOSE:
  Every point a worker earns is mirrored by an immutable Event. The event
  log is never updated or deleted; it backs the admin console's total
  awarded figure and makes the bonus history auditable after the fact.

IDEMPOTENCY:
  Each event carries a deterministic idempotency key (one per worker per
  month for login bonuses, one per worker per promotion for reading
  bonuses). A store-level unique index makes replays harmless.
*/
package engagement

import (
	"fmt"
	"time"
)

type EventKind string

const (
	// EventLoginBonus is the once-per-calendar-month login award.
	EventLoginBonus EventKind = "login_bonus"

	// EventPromotionRead is the once-per-promotion reading award.
	EventPromotionRead EventKind = "promotion_read"
)

// Event records a single point award. Points move in increments of one,
// so the event itself carries no amount.
type Event struct {
	ID             string
	PassportNumber string // canonical (uppercase) form
	Kind           EventKind
	Reference      string // YYYY-MM for login bonus, promotion ID for reads
	IdempotencyKey string
	CreatedAt      time.Time
}

// LoginBonusKey is the idempotency key for a monthly login award.
func LoginBonusKey(passport, yearMonth string) string {
	return fmt.Sprintf("login:%s:%s", passport, yearMonth)
}

// PromotionReadKey is the idempotency key for a reading award.
func PromotionReadKey(passport, promotionID string) string {
	return fmt.Sprintf("read:%s:%s", passport, promotionID)
}
