package get_available_slots

import "errors"

var (
	// ErrTenantNotFound is returned when neither id nor slug resolve a tenant.
	ErrTenantNotFound = errors.New("get_available_slots: tenant not found")

	// ErrInvalidDate is returned for a past date.
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInvalidConfig is returned when the tenant slot configuration is
	// unusable (non-positive interval).
	ErrInvalidConfig = errors.New("get_available_slots: invalid tenant configuration")

	// ErrPersistence wraps storage failures.
	ErrPersistence = errors.New("get_available_slots: persistence error")
)
