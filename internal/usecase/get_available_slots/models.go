package get_available_slots

import (
	"time"

	"github.com/hangarapp/hangar-booking/internal/domain"
	"github.com/hangarapp/hangar-booking/pkg/timeofday"
)

// Request asks for the bookable slots of one tenant day. Exactly one of
// TenantID or Slug identifies the tenant; Slug is the public micro-site
// path.
type Request struct {
	TenantID int64
	Slug     string
	Date     time.Time
}

// Response carries the resolved day and its slots. CLOSED and BLOCKED days
// come back with an empty slot list rather than an error: a calendar
// showing a closed day is a normal render, not a failure.
type Response struct {
	TenantID  int64
	Date      time.Time
	DayStatus domain.DayStatus
	Slots     []Slot
}

// Slot is one bookable time with its occupancy. Full slots are flagged,
// not omitted, so the UI can disable them.
type Slot struct {
	StartTime timeofday.TimeOfDay
	Count     int
	Capacity  int
	IsFull    bool
}
