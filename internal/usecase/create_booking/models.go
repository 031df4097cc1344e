package create_booking

import (
	"time"

	"github.com/hangarapp/hangar-booking/pkg/timeofday"
)

// NewVehicle is inline vehicle data for a first-time customer.
type NewVehicle struct {
	Brand string
	Model string
	Plate *string
}

// NewCustomer is inline customer data supplied by the public booking flow.
type NewCustomer struct {
	Name    string
	Phone   string
	Email   *string
	Vehicle *NewVehicle
}

// Request is one booking attempt. The tenant comes as id (staff tooling)
// or slug (public micro-site). The customer comes either as existing
// references or as inline NewCustomer data, never both.
type Request struct {
	TenantID int64
	Slug     string

	ServiceID int64
	Date      time.Time
	StartTime timeofday.TimeOfDay

	CustomerID  int64  // existing customer, 0 when inline
	VehicleID   *int64 // optional, must belong to the customer
	NewCustomer *NewCustomer

	Observation *string
	Source      string // "staff" or "public", for metrics and logs
}

// Response is the committed appointment.
type Response struct {
	ID              int64
	PublicRef       string
	TenantID        int64
	CustomerID      int64
	VehicleID       *int64
	ServiceID       int64
	Date            time.Time
	StartTime       timeofday.TimeOfDay
	DurationMinutes int
	Price           float64
	Status          string
	Observation     *string

	ServiceName   string
	CustomerName  string
	CustomerPhone string
	VehicleBrand  *string
	VehicleModel  *string
	VehiclePlate  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
