package tenants

import (
	"context"
	"errors"
	"fmt"

	"github.com/hangarapp/hangar-booking/internal/domain"
	tenantRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/tenant"
	"github.com/hangarapp/hangar-booking/internal/service/tenants/models"
)

// Service resolves tenants for the rest of the application, fronting the
// storage layer with the slug cache.
type Service struct {
	tenantRepo  TenantRepository
	serviceRepo ServiceRepository
	cache       TenantCache
	logger      Logger
}

// NewService creates the tenants service. cache may be nil when Redis is
// disabled; every lookup then goes to the database.
func NewService(tenantRepo TenantRepository, serviceRepo ServiceRepository, cache TenantCache, logger Logger) *Service {
	return &Service{
		tenantRepo:  tenantRepo,
		serviceRepo: serviceRepo,
		cache:       cache,
		logger:      logger,
	}
}

// GetByID fetches a tenant by primary key. Staff-side lookups come through
// here and skip the cache: they are rare compared to the public slug path.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("GetByID: tenant id=%d not found", id)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("GetByID: repository error for tenant id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID: %v", ErrInternal, err)
	}
	return tenant, nil
}

// GetBySlug fetches a tenant by public slug, read-through the cache.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	if s.cache != nil {
		cached, err := s.cache.GetBySlug(ctx, slug)
		if err != nil {
			s.logger.Warn("GetBySlug: cache read failed for slug=%q: %v", slug, err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("GetBySlug: tenant slug=%q not found", slug)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("GetBySlug: repository error for slug=%q: %v", slug, err)
		return nil, fmt.Errorf("%w: GetBySlug: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, tenant); err != nil {
			s.logger.Warn("GetBySlug: cache write failed for slug=%q: %v", slug, err)
		}
	}
	return tenant, nil
}

// GetPublicProfile builds the micro-site profile: tenant identity plus the
// active service catalog.
func (s *Service) GetPublicProfile(ctx context.Context, slug string) (*models.PublicProfileResponse, error) {
	tenant, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	services, err := s.serviceRepo.ListActiveByTenant(ctx, tenant.ID)
	if err != nil {
		s.logger.Error("GetPublicProfile: failed to list services for tenant=%d: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: GetPublicProfile: %v", ErrInternal, err)
	}

	s.logger.Info("GetPublicProfile: slug=%q services=%d", slug, len(services))
	return models.FromDomainProfile(tenant, services), nil
}

// InvalidateSlug drops the cached entry after a tenant update.
func (s *Service) InvalidateSlug(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slug); err != nil {
		s.logger.Warn("InvalidateSlug: failed for slug=%q: %v", slug, err)
	}
}
