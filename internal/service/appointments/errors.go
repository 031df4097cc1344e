package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist
	// or belongs to another tenant.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidTransition is returned for a lifecycle edge the state
	// machine does not allow, self-transitions included.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCannotCancel is returned when the appointment is already in a
	// terminal status.
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on storage failures.
	ErrInternal = errors.New("appointments service: internal error")
)
