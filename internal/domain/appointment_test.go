package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{name: "new to confirmed", from: StatusNew, to: StatusConfirmed, want: true},
		{name: "new to cancelled", from: StatusNew, to: StatusCancelled, want: true},
		{name: "confirmed to in progress", from: StatusConfirmed, to: StatusInProgress, want: true},
		{name: "confirmed to cancelled", from: StatusConfirmed, to: StatusCancelled, want: true},
		{name: "in progress to completed", from: StatusInProgress, to: StatusCompleted, want: true},
		{name: "in progress to cancelled", from: StatusInProgress, to: StatusCancelled, want: true},

		{name: "new skips to in progress", from: StatusNew, to: StatusInProgress, want: false},
		{name: "new skips to completed", from: StatusNew, to: StatusCompleted, want: false},
		{name: "confirmed back to new", from: StatusConfirmed, to: StatusNew, want: false},
		{name: "completed to new", from: StatusCompleted, to: StatusNew, want: false},
		{name: "completed to cancelled", from: StatusCompleted, to: StatusCancelled, want: false},
		{name: "cancelled to confirmed", from: StatusCancelled, to: StatusConfirmed, want: false},
		{name: "self transition", from: StatusNew, to: StatusNew, want: false},
		{name: "unknown status", from: AppointmentStatus("PENDENTE"), to: StatusNew, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []AppointmentStatus{StatusCompleted, StatusCancelled} {
		for _, to := range []AppointmentStatus{StatusNew, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled} {
			assert.False(t, CanTransition(terminal, to), "%s -> %s must be rejected", terminal, to)
		}
		assert.True(t, IsTerminal(terminal))
	}

	assert.False(t, IsTerminal(StatusNew))
	assert.False(t, IsTerminal(StatusConfirmed))
	assert.False(t, IsTerminal(StatusInProgress))
}

func TestAppointmentTransition(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	a := &Appointment{Status: StatusNew}

	require.True(t, a.Transition(StatusCancelled, now))
	assert.Equal(t, StatusCancelled, a.Status)
	require.NotNil(t, a.CancelledAt)
	assert.Equal(t, now, *a.CancelledAt)

	// Cancelled is terminal: the subsequent transition is rejected and
	// leaves the appointment untouched.
	assert.False(t, a.Transition(StatusConfirmed, now))
	assert.Equal(t, StatusCancelled, a.Status)
}

func TestAppointmentIsActive(t *testing.T) {
	for _, st := range []AppointmentStatus{StatusNew, StatusConfirmed, StatusInProgress, StatusCompleted} {
		a := Appointment{Status: st}
		assert.True(t, a.IsActive(), "%s must occupy its slot", st)
	}
	assert.False(t, (&Appointment{Status: StatusCancelled}).IsActive())
}

func TestWeeklySchedule(t *testing.T) {
	rules := []OperatingRule{
		{DayOfWeek: 1, IsOpen: true},
		{DayOfWeek: 3, IsOpen: true},
	}
	schedule := NewWeeklySchedule(rules)

	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	rule, ok := schedule.RuleFor(monday)
	require.True(t, ok)
	assert.Equal(t, 1, rule.DayOfWeek)

	tuesday := monday.AddDate(0, 0, 1)
	_, ok = schedule.RuleFor(tuesday)
	assert.False(t, ok)
}
