package schedule

import (
	"context"
	"time"

	"github.com/hangarapp/hangar-booking/internal/domain"
)

// TenantRepository reads tenants and persists their booking configuration.
type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
	UpdateBookingConfig(ctx context.Context, tenantID int64, slotIntervalMinutes, boxCapacity int) error
}

// ScheduleRepository is the operating rules and blocked dates storage.
type ScheduleRepository interface {
	GetOperatingRules(ctx context.Context, tenantID int64) ([]domain.OperatingRule, error)
	ReplaceOperatingRules(ctx context.Context, tenantID int64, rules []domain.OperatingRule) error
	GetBlockedDates(ctx context.Context, tenantID int64, from *time.Time) ([]domain.BlockedDate, error)
	AddBlockedDate(ctx context.Context, b *domain.BlockedDate) (*domain.BlockedDate, error)
	RemoveBlockedDate(ctx context.Context, tenantID int64, date time.Time) error
}

// TenantCache invalidates cached tenant entries after configuration
// changes.
type TenantCache interface {
	Invalidate(ctx context.Context, slug string) error
}

// TransactionManager wraps the schedule replacement so rules and booking
// config change atomically.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
