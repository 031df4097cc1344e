package reports

import (
	"context"

	"github.com/hangarapp/hangar-booking/internal/domain"
	appointmentRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/appointment"
)

// AppointmentRepository serves the revenue aggregation query.
type AppointmentRepository interface {
	RevenueByDay(ctx context.Context, tenantID int64, from, to string) ([]appointmentRepo.RevenueRow, error)
}

// TenantRepository resolves the tenant for report headers.
type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
}

// Logger is the logging interface consumed by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
