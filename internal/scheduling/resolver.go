package scheduling

import (
	"time"

	"github.com/hangarapp/hangar-booking/internal/domain"
)

// ResolveDay decides whether a tenant calendar day is open, closed or
// explicitly blocked.
//
// The weekday rule is consulted first: no rule, or an is_open=false rule,
// means CLOSED. Only a day that would otherwise be open can report BLOCKED,
// so a blocked Sunday on a closed-Sundays tenant still resolves CLOSED.
// Past dates are the caller's concern; the resolver only reads the
// calendar.
func ResolveDay(cfg *domain.ScheduleConfig, date time.Time) domain.DayStatus {
	rule, ok := cfg.Rules.RuleFor(date)
	if !ok || !rule.IsOpen {
		return domain.DayClosed
	}
	if _, blocked := cfg.IsBlocked(date); blocked {
		return domain.DayBlocked
	}
	return domain.DayOpen
}

// IsPastDate reports whether date falls strictly before now's calendar day.
// Time-of-day is ignored on both sides.
func IsPastDate(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// IsSameDay reports whether both times fall on the same calendar day.
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
