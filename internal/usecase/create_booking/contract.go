package create_booking

import (
	"context"
	"time"

	"github.com/hangarapp/hangar-booking/internal/domain"
)

// TenantProvider resolves tenants by id or public slug.
type TenantProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

// ScheduleProvider loads a tenant's calendar configuration.
type ScheduleProvider interface {
	ScheduleConfig(ctx context.Context, tenant *domain.Tenant) (*domain.ScheduleConfig, error)
}

// AppointmentRepository reads day occupancy and inserts the appointment.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// ServiceRepository reads the tenant service catalog.
type ServiceRepository interface {
	GetByID(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error)
}

// CustomerRepository resolves existing customers and creates inline ones.
type CustomerRepository interface {
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
	CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	CreateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
}

// TransactionManager runs the capacity re-check and insert atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier dispatches the booking confirmation fire-and-forget.
type Notifier interface {
	BookingConfirmed(tenant *domain.Tenant, a *domain.Appointment)
}

// Metrics counts committed bookings.
type Metrics interface {
	IncAppointmentCreated(source string)
}

// TimeProvider supplies the current time, injectable for tests.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface consumed by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
