package create_public_booking

import (
	"time"

	"github.com/hangarapp/hangar-booking/internal/domain"
	createBooking "github.com/hangarapp/hangar-booking/internal/usecase/create_booking"
	"github.com/hangarapp/hangar-booking/pkg/timeofday"
)

// VehicleRequest is the customer's vehicle on the public form.
type VehicleRequest struct {
	Brand string  `json:"brand"`
	Model string  `json:"model"`
	Plate *string `json:"plate,omitempty"`
}

// PublicBookingRequest is the micro-site booking form. The customer is
// always created inline; the public flow has no customer accounts.
type PublicBookingRequest struct {
	ServiceID   int64           `json:"serviceId"`
	Date        string          `json:"date"`      // "2025-03-03"
	StartTime   string          `json:"startTime"` // "09:00"
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Email       *string         `json:"email,omitempty"`
	Vehicle     *VehicleRequest `json:"vehicle,omitempty"`
	Observation *string         `json:"observation,omitempty"`
}

// ToUseCaseRequest parses date and time and converts to the use case model.
func (r *PublicBookingRequest) ToUseCaseRequest(slug string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	start, err := timeofday.Parse(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		Slug:      slug,
		ServiceID: r.ServiceID,
		Date:      date,
		StartTime: start,
		NewCustomer: &createBooking.NewCustomer{
			Name:  r.Name,
			Phone: r.Phone,
			Email: r.Email,
		},
		Observation: r.Observation,
		Source:      "public",
	}
	if r.Vehicle != nil {
		req.NewCustomer.Vehicle = &createBooking.NewVehicle{
			Brand: r.Vehicle.Brand,
			Model: r.Vehicle.Model,
			Plate: r.Vehicle.Plate,
		}
	}
	return req, nil
}

// PublicBookingResponse is what the micro-site shows after booking. It
// exposes the public ref, never internal ids.
type PublicBookingResponse struct {
	PublicRef   string  `json:"publicRef"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	ServiceName string  `json:"serviceName"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
}

// FromUseCaseResponse converts the use case result into the public model.
func FromUseCaseResponse(resp *createBooking.Response) *PublicBookingResponse {
	return &PublicBookingResponse{
		PublicRef:   resp.PublicRef,
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		ServiceName: resp.ServiceName,
		Price:       resp.Price,
		Status:      resp.Status,
	}
}
