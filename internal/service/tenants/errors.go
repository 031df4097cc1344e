package tenants

import "errors"

var (
	// ErrTenantNotFound is returned when neither id nor slug resolve a tenant.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInternal is returned on storage failures.
	ErrInternal = errors.New("tenants service: internal error")
)
