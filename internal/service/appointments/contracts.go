package appointments

import (
	"context"
	"time"

	"github.com/hangarapp/hangar-booking/internal/domain"
)

// AppointmentRepository is the appointments storage interface.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByPublicRef(ctx context.Context, ref string) (*domain.Appointment, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// TenantRepository resolves tenants for cancellation notifications.
type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
}

// Notifier dispatches cancellation messages fire-and-forget.
type Notifier interface {
	BookingCancelled(tenant *domain.Tenant, a *domain.Appointment)
}

// TimeProvider supplies the current time, injectable for tests.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface consumed by the service.
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
