package domain

import "github.com/hangarapp/hangar-booking/pkg/timeofday"

// DayStatus is the calendar resolution for one tenant day.
type DayStatus string

const (
	DayOpen    DayStatus = "OPEN"
	DayClosed  DayStatus = "CLOSED"
	DayBlocked DayStatus = "BLOCKED"
)

// SlotOccupancy describes one bookable slot and how occupied it is. Full
// slots stay visible to the booking UI (disabled, not hidden).
type SlotOccupancy struct {
	StartTime timeofday.TimeOfDay
	Count     int // active appointments at exactly this time
	Capacity  int // tenant box capacity
}

// IsFull reports whether the slot cannot take another appointment.
func (s SlotOccupancy) IsFull() bool {
	return s.Count >= s.Capacity
}
