package tenants

import (
	"context"

	"github.com/hangarapp/hangar-booking/internal/domain"
)

// TenantRepository is the tenants storage interface.
type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

// ServiceRepository reads the tenant's public service catalog.
type ServiceRepository interface {
	ListActiveByTenant(ctx context.Context, tenantID int64) ([]*domain.Service, error)
}

// TenantCache is the slug lookup cache. All methods are best-effort: cache
// failures degrade to database reads, never to request failures.
type TenantCache interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	Set(ctx context.Context, t *domain.Tenant) error
	Invalidate(ctx context.Context, slug string) error
}

// Logger is the logging interface consumed by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
