package schedule

import "errors"

var (
	// ErrTenantNotFound is returned when the tenant does not exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrBlockedDateNotFound is returned when removing a block that does
	// not exist.
	ErrBlockedDateNotFound = errors.New("blocked date not found")

	// ErrInvalidRule is returned for an operating rule that fails
	// validation (bad weekday, duplicate weekday, open >= close).
	ErrInvalidRule = errors.New("invalid operating rule")

	// ErrInvalidConfig is returned for slot interval or box capacity out of
	// bounds.
	ErrInvalidConfig = errors.New("invalid booking configuration")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on storage failures.
	ErrInternal = errors.New("schedule service: internal error")
)
