package domain

import "time"

// Customer represents a tenant's client.
type Customer struct {
	ID       int64
	TenantID int64
	Name     string
	Phone    string
	Email    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Vehicle belongs to exactly one customer. An appointment may reference at
// most one vehicle owned by its customer.
type Vehicle struct {
	ID         int64
	CustomerID int64
	Brand      string
	Model      string
	Plate      *string

	CreatedAt time.Time
}
