package reports

import "errors"

var (
	// ErrTenantNotFound is returned when the tenant does not exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidPeriod is returned for a malformed or inverted date range.
	ErrInvalidPeriod = errors.New("invalid report period")

	// ErrInternal is returned on storage or export failures.
	ErrInternal = errors.New("reports service: internal error")
)
