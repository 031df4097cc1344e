package domain

import (
	"time"

	"github.com/hangarapp/hangar-booking/pkg/timeofday"
)

// AppointmentStatus represents the lifecycle status of an appointment.
// Values are stored as-is, matching what the tenant-facing apps display.
type AppointmentStatus string

const (
	StatusNew        AppointmentStatus = "NOVO"
	StatusConfirmed  AppointmentStatus = "CONFIRMADO"
	StatusInProgress AppointmentStatus = "EM_EXECUCAO"
	StatusCompleted  AppointmentStatus = "FINALIZADO"
	StatusCancelled  AppointmentStatus = "CANCELADO"
)

// allowedTransitions is the appointment state machine. Terminal states map
// to empty sets.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusNew:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// IsValidStatus reports whether s is a known appointment status.
func IsValidStatus(s AppointmentStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether from → to is an allowed lifecycle edge.
// Self-transitions are not allowed; they indicate a caller bug rather than
// a legitimate no-op.
func CanTransition(from, to AppointmentStatus) bool {
	allowed, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the status.
func IsTerminal(s AppointmentStatus) bool {
	allowed, ok := allowedTransitions[s]
	return ok && len(allowed) == 0
}

// Appointment represents a scheduled detailing job in a tenant's agenda.
type Appointment struct {
	ID         int64
	PublicRef  string // uuid shared with the customer in confirmations
	TenantID   int64
	CustomerID int64
	VehicleID  *int64 // optional until a vehicle is assigned
	ServiceID  int64

	Date            time.Time
	StartTime       timeofday.TimeOfDay
	DurationMinutes int
	Price           float64
	Status          AppointmentStatus
	Observation     *string

	// Denormalized display data, kept stable for history even when the
	// catalog or customer record changes later.
	ServiceName   string
	CustomerName  string
	CustomerPhone string
	VehicleBrand  *string
	VehicleModel  *string
	VehiclePlate  *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment still occupies its slot.
// Cancelled appointments free their slot; all other statuses hold it.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled reports whether the appointment may still be cancelled.
func (a *Appointment) CanBeCancelled() bool {
	return !IsTerminal(a.Status)
}

// Transition applies a lifecycle transition, maintaining the cancellation
// timestamp. Callers must check CanTransition first; an invalid edge here
// is a programming error and is reported as false.
func (a *Appointment) Transition(to AppointmentStatus, now time.Time) bool {
	if !CanTransition(a.Status, to) {
		return false
	}
	a.Status = to
	if to == StatusCancelled && a.CancelledAt == nil {
		t := now
		a.CancelledAt = &t
	}
	return true
}

// AppointmentsFilter narrows tenant appointment queries.
type AppointmentsFilter struct {
	TenantID        int64
	Date            *time.Time         // exact date (nil = any)
	StartDate       *time.Time         // period start (nil = unbounded)
	EndDate         *time.Time         // period end (nil = unbounded)
	Status          *AppointmentStatus // nil = any
	IncludeInactive bool               // include cancelled appointments
}
