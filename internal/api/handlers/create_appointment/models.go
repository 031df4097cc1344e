package create_appointment

import (
	"time"

	"github.com/hangarapp/hangar-booking/internal/domain"
	createBooking "github.com/hangarapp/hangar-booking/internal/usecase/create_booking"
	"github.com/hangarapp/hangar-booking/pkg/timeofday"
)

// NewVehicleRequest is inline vehicle data for a first-time customer.
type NewVehicleRequest struct {
	Brand string  `json:"brand"`
	Model string  `json:"model"`
	Plate *string `json:"plate,omitempty"`
}

// NewCustomerRequest is inline customer data.
type NewCustomerRequest struct {
	Name    string             `json:"name"`
	Phone   string             `json:"phone"`
	Email   *string            `json:"email,omitempty"`
	Vehicle *NewVehicleRequest `json:"vehicle,omitempty"`
}

// CreateAppointmentRequest is the staff-side booking body.
type CreateAppointmentRequest struct {
	ServiceID   int64               `json:"serviceId"`
	Date        string              `json:"date"`      // "2025-03-03"
	StartTime   string              `json:"startTime"` // "09:00"
	CustomerID  int64               `json:"customerId,omitempty"`
	VehicleID   *int64              `json:"vehicleId,omitempty"`
	NewCustomer *NewCustomerRequest `json:"newCustomer,omitempty"`
	Observation *string             `json:"observation,omitempty"`
}

// ToUseCaseRequest parses date and time and converts to the use case model.
func (r *CreateAppointmentRequest) ToUseCaseRequest(tenantID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	start, err := timeofday.Parse(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		TenantID:    tenantID,
		ServiceID:   r.ServiceID,
		Date:        date,
		StartTime:   start,
		CustomerID:  r.CustomerID,
		VehicleID:   r.VehicleID,
		Observation: r.Observation,
		Source:      "staff",
	}
	if r.NewCustomer != nil {
		req.NewCustomer = &createBooking.NewCustomer{
			Name:  r.NewCustomer.Name,
			Phone: r.NewCustomer.Phone,
			Email: r.NewCustomer.Email,
		}
		if r.NewCustomer.Vehicle != nil {
			req.NewCustomer.Vehicle = &createBooking.NewVehicle{
				Brand: r.NewCustomer.Vehicle.Brand,
				Model: r.NewCustomer.Vehicle.Model,
				Plate: r.NewCustomer.Vehicle.Plate,
			}
		}
	}
	return req, nil
}

// AppointmentResponse is the committed appointment HTTP model.
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	PublicRef       string  `json:"publicRef"`
	TenantID        int64   `json:"tenantId"`
	CustomerID      int64   `json:"customerId"`
	VehicleID       *int64  `json:"vehicleId,omitempty"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Status          string  `json:"status"`
	Observation     *string `json:"observation,omitempty"`
	ServiceName     string  `json:"serviceName"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	VehicleBrand    *string `json:"vehicleBrand,omitempty"`
	VehicleModel    *string `json:"vehicleModel,omitempty"`
	VehiclePlate    *string `json:"vehiclePlate,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// FromUseCaseResponse converts the use case result into the HTTP model.
func FromUseCaseResponse(resp *createBooking.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		PublicRef:       resp.PublicRef,
		TenantID:        resp.TenantID,
		CustomerID:      resp.CustomerID,
		VehicleID:       resp.VehicleID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Price:           resp.Price,
		Status:          resp.Status,
		Observation:     resp.Observation,
		ServiceName:     resp.ServiceName,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		VehicleBrand:    resp.VehicleBrand,
		VehicleModel:    resp.VehicleModel,
		VehiclePlate:    resp.VehiclePlate,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
