/*
Package entitlement computes statutory deadlines for worker documents.

PURPOSE:
  Pure date arithmetic with no side effects and no I/O: how many days
  until a document expires, and when the next legally mandated medical
  checkup falls. Both functions take "today" as a parameter instead of
  reading the system clock, so callers (and tests) pin the evaluation
  date explicitly.

SCHEDULES:
  abroad entry:    checkups at entry + 6, 18 and 30 months. Once all
                   three have passed, no further statutory checkup is
                   modeled - that is the domain boundary, not a bug.
  domestic entry:  checkups every 12 months from entry, searched out to
                   a 120-month horizon as a safety bound.

MONTH ARITHMETIC:
  Calendar month addition follows time.Time.AddDate: adding a month to
  Jan 31 normalizes forward (Mar 2 or Mar 3), it does not clamp to the
  last day of February. One rule, applied everywhere, tested explicitly.

SEE ALSO:
  - worker/: EntryType definitions and date parsing
  - api/: Dashboard summaries built from these results
*/
package entitlement

import (
	"time"

	"github.com/pan-asia/worker-portal/worker"
)

// domesticHorizonMonths bounds the every-12-months search so a far past
// entry date cannot loop unbounded.
const domesticHorizonMonths = 120

// DaysUntil returns the number of whole calendar days from today until
// target: negative if target has passed, zero if it is today. Both
// instants are truncated to midnight before subtracting, and partial
// days round up. A zero target returns 0 - the documented degenerate
// case for records with no date set.
func DaysUntil(today, target time.Time) int {
	if target.IsZero() {
		return 0
	}
	// Unix-second subtraction, not time.Time.Sub: Sub saturates around
	// 292 years and sentinel expiry dates (9999-12-31) sit far beyond it.
	diff := midnight(target).Unix() - midnight(today).Unix()
	days := int(diff / 86400)
	if diff%86400 > 0 {
		days++
	}
	return days
}

// NextStatutoryCheckup returns the next checkup date at or after today
// (today inclusive) for the given entry date and entry type. ok is false
// when no further checkup is due: all abroad milestones have passed, the
// domestic horizon is exhausted, or the entry date is unset.
func NextStatutoryCheckup(today, entry time.Time, entryType worker.EntryType) (next time.Time, ok bool) {
	if entry.IsZero() {
		return time.Time{}, false
	}
	t := midnight(today)
	e := midnight(entry)

	switch entryType {
	case worker.EntryAbroad:
		for _, m := range []int{6, 18, 30} {
			due := e.AddDate(0, m, 0)
			if !due.Before(t) {
				return due, true
			}
		}
		return time.Time{}, false

	case worker.EntryDomestic:
		for m := 12; m < domesticHorizonMonths; m += 12 {
			due := e.AddDate(0, m, 0)
			if !due.Before(t) {
				return due, true
			}
		}
		return time.Time{}, false

	default:
		return time.Time{}, false
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
