package scheduling

import (
	"github.com/hangarapp/hangar-booking/pkg/timeofday"
)

// GenerateSlots produces the ordered slot start times for an open day:
// openTime, openTime+interval, ... while strictly before closeTime.
//
// The sequence is deterministic: identical inputs always yield identical
// slices. An inverted or empty window (closeTime <= openTime) yields an
// empty slice and no error, matching how a rule edited into nonsense
// should degrade. A non-positive interval is a tenant misconfiguration and
// fails fast with ErrInvalidInterval.
func GenerateSlots(openTime, closeTime timeofday.TimeOfDay, intervalMinutes int) ([]timeofday.TimeOfDay, error) {
	if intervalMinutes <= 0 {
		return nil, ErrInvalidInterval
	}

	slots := make([]timeofday.TimeOfDay, 0)
	for cursor := openTime; cursor.Before(closeTime); cursor = cursor.AddMinutes(intervalMinutes) {
		slots = append(slots, cursor)
	}
	return slots, nil
}

// ContainsSlot reports whether t is one of the generated slot times.
func ContainsSlot(slots []timeofday.TimeOfDay, t timeofday.TimeOfDay) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}

// FormatSlots renders slot times as zero-padded "HH:MM" strings for the
// API boundary.
func FormatSlots(slots []timeofday.TimeOfDay) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}
