package domain

import (
	"time"

	"github.com/hangarapp/hangar-booking/pkg/timeofday"
)

// Tenant represents one detailing business ("hangar") on the platform.
// The public slug addresses the booking micro-site.
type Tenant struct {
	ID    int64
	Slug  string
	Name  string
	Phone string

	SlotIntervalMinutes int // slot granularity, > 0
	BoxCapacity         int // simultaneous appointments per slot, >= 1

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OperatingRule defines the opening window for one weekday. Absence of a
// rule for a weekday means closed on that weekday.
type OperatingRule struct {
	ID        int64
	TenantID  int64
	DayOfWeek int // 0 = Sunday ... 6 = Saturday
	IsOpen    bool
	OpenTime  timeofday.TimeOfDay
	CloseTime timeofday.TimeOfDay
}

// BlockedDate closes an otherwise-open calendar day for a tenant.
type BlockedDate struct {
	ID       int64
	TenantID int64
	Date     time.Time
	Reason   *string
}

// WeeklySchedule indexes operating rules by weekday for O(1) lookup.
type WeeklySchedule map[int]OperatingRule

// NewWeeklySchedule builds the weekday index. The storage layer enforces at
// most one rule per weekday; a duplicate here keeps the last one read.
func NewWeeklySchedule(rules []OperatingRule) WeeklySchedule {
	schedule := make(WeeklySchedule, len(rules))
	for _, r := range rules {
		schedule[r.DayOfWeek] = r
	}
	return schedule
}

// RuleFor returns the rule for the given date's weekday, if any.
func (s WeeklySchedule) RuleFor(date time.Time) (OperatingRule, bool) {
	rule, ok := s[int(date.Weekday())]
	return rule, ok
}

// ScheduleConfig bundles everything the calendar resolver and slot
// generator need for one tenant.
type ScheduleConfig struct {
	Tenant       Tenant
	Rules        WeeklySchedule
	BlockedDates map[string]BlockedDate // keyed by DateKey
}

// DateKey normalizes a date to its map key ("2006-01-02").
func DateKey(date time.Time) string {
	return date.Format(DateFormat)
}

// IsBlocked reports whether the exact date is blocked, together with the
// block entry.
func (c *ScheduleConfig) IsBlocked(date time.Time) (BlockedDate, bool) {
	b, ok := c.BlockedDates[DateKey(date)]
	return b, ok
}
