package models

import (
	"errors"
	"time"

	"github.com/hangarapp/hangar-booking/internal/domain"
)

var (
	// ErrInvalidStatus is returned when a status string is not part of the
	// lifecycle.
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// ListRequest filters a tenant's agenda. Date selects a single day;
// StartDate/EndDate select a period. Cancelled appointments are excluded
// unless IncludeInactive is set.
type ListRequest struct {
	TenantID        int64      `json:"tenantId"`
	Date            *time.Time `json:"date,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter converts the request into the storage filter.
func (r *ListRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		TenantID:        r.TenantID,
		Date:            r.Date,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}
	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// UpdateStatusRequest moves an appointment along its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CancelRequest cancels an appointment with an optional reason.
type CancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// AppointmentResponse is the appointment DTO served to staff tooling.
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	PublicRef       string  `json:"publicRef"`
	TenantID        int64   `json:"tenantId"`
	CustomerID      int64   `json:"customerId"`
	VehicleID       *int64  `json:"vehicleId,omitempty"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`      // "2025-03-03"
	StartTime       string  `json:"startTime"` // "09:00"
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Status          string  `json:"status"`
	Observation     *string `json:"observation,omitempty"`

	ServiceName   string  `json:"serviceName"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	VehicleBrand  *string `json:"vehicleBrand,omitempty"`
	VehicleModel  *string `json:"vehicleModel,omitempty"`
	VehiclePlate  *string `json:"vehiclePlate,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // RFC 3339

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse is a page of appointments.
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// ToDomainStatus parses a status string.
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !domain.IsValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainAppointment converts a domain appointment into its DTO.
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		PublicRef:          a.PublicRef,
		TenantID:           a.TenantID,
		CustomerID:         a.CustomerID,
		VehicleID:          a.VehicleID,
		ServiceID:          a.ServiceID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Price:              a.Price,
		Status:             string(a.Status),
		Observation:        a.Observation,
		ServiceName:        a.ServiceName,
		CustomerName:       a.CustomerName,
		CustomerPhone:      a.CustomerPhone,
		VehicleBrand:       a.VehicleBrand,
		VehicleModel:       a.VehicleModel,
		VehiclePlate:       a.VehiclePlate,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if a.CancelledAt != nil {
		formatted := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &formatted
	}
	return resp
}

// FromDomainAppointmentList converts a slice of domain appointments.
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}
