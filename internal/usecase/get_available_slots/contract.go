package get_available_slots

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

// AppointmentRepository reads the appointments occupying a day.
type AppointmentRepository interface {
	GetByTenantWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
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
