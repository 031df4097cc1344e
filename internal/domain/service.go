package domain

import "time"

// Service is a catalog entry a tenant offers (wash, polish, ceramic
// coating, ...). Price and duration are copied onto appointments at booking
// time.
type Service struct {
	ID              int64
	TenantID        int64
	Name            string
	Price           float64
	DurationMinutes int
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
