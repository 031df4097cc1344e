package create_booking

import (
	"fmt"

	"github.com/hangarapp/hangar-booking/internal/domain"
)

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.TenantID <= 0 && req.Slug == "" {
		return fmt.Errorf("%w: tenant id or slug is required", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !req.StartTime.Valid() {
		return fmt.Errorf("%w: start time is out of range", ErrInvalidInput)
	}

	hasExisting := req.CustomerID > 0
	hasInline := req.NewCustomer != nil
	if hasExisting == hasInline {
		return fmt.Errorf("%w: exactly one of customer id or inline customer is required", ErrInvalidInput)
	}
	if hasInline {
		if err := validateNewCustomer(req.NewCustomer); err != nil {
			return err
		}
		if req.VehicleID != nil {
			return fmt.Errorf("%w: vehicle id cannot be combined with inline customer", ErrInvalidInput)
		}
	}
	if req.VehicleID != nil && *req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicle id must be positive", ErrInvalidInput)
	}

	if req.Observation != nil && len(*req.Observation) > domain.MaxObservationLength {
		return fmt.Errorf("%w: observation exceeds %d characters", ErrInvalidInput, domain.MaxObservationLength)
	}

	if req.Source != "staff" && req.Source != "public" {
		return fmt.Errorf("%w: unknown source %q", ErrInvalidInput, req.Source)
	}
	return nil
}

func validateNewCustomer(c *NewCustomer) error {
	if c.Name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if c.Phone == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}
	if c.Vehicle != nil {
		if c.Vehicle.Brand == "" || c.Vehicle.Model == "" {
			return fmt.Errorf("%w: vehicle brand and model are required", ErrInvalidInput)
		}
	}
	return nil
}
