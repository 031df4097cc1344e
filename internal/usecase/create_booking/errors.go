package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrTenantNotFound is returned when neither id nor slug resolve a tenant.
	ErrTenantNotFound = errors.New("create_booking: tenant not found")

	// ErrServiceNotFound is returned when the catalog entry does not exist.
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive is returned for a catalog entry no longer bookable.
	ErrServiceInactive = errors.New("create_booking: service is inactive")

	// ErrCustomerNotFound is returned when the referenced customer does not exist.
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrVehicleNotFound is returned when the referenced vehicle does not exist.
	ErrVehicleNotFound = errors.New("create_booking: vehicle not found")

	// ErrVehicleNotOwned is returned when the vehicle belongs to another customer.
	ErrVehicleNotOwned = errors.New("create_booking: vehicle does not belong to customer")

	// ErrInvalidDate is returned for a past or zero date.
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrClosedDay is returned when the day resolves CLOSED or BLOCKED.
	ErrClosedDay = errors.New("create_booking: tenant is closed on this date")

	// ErrInvalidSlot is returned when the time is not one of the day's slots.
	ErrInvalidSlot = errors.New("create_booking: time is not a valid slot")

	// ErrSlotFull is returned when box capacity is already reached.
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrInvalidConfig is returned when the tenant slot configuration is unusable.
	ErrInvalidConfig = errors.New("create_booking: invalid tenant configuration")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrPersistence wraps storage failures.
	ErrPersistence = errors.New("create_booking: persistence error")
)

// OrphanRecordError reports that an inline customer (and possibly vehicle)
// was created but the appointment insert then failed. The records are not
// rolled back, so the caller can offer a retry that reuses them.
type OrphanRecordError struct {
	CustomerID int64
	VehicleID  *int64
	Cause      error
}

func (e *OrphanRecordError) Error() string {
	return fmt.Sprintf("create_booking: orphan customer=%d after failed appointment insert: %v",
		e.CustomerID, e.Cause)
}

// Unwrap exposes the underlying failure so errors.Is on ErrSlotFull,
// ErrPersistence etc. still works through the orphan wrapper.
func (e *OrphanRecordError) Unwrap() error {
	return e.Cause
}
