package tenants

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarapp/hangar-booking/internal/domain"
	tenantRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/tenant"
)

type fakeTenants struct {
	bySlug     map[string]*domain.Tenant
	byID       map[int64]*domain.Tenant
	slugLooked int
}

func (f *fakeTenants) GetByID(_ context.Context, id int64) (*domain.Tenant, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, tenantRepo.ErrTenantNotFound
	}
	return t, nil
}

func (f *fakeTenants) GetBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	f.slugLooked++
	t, ok := f.bySlug[slug]
	if !ok {
		return nil, tenantRepo.ErrTenantNotFound
	}
	return t, nil
}

type fakeServices struct {
	active []*domain.Service
	err    error
}

func (f *fakeServices) ListActiveByTenant(_ context.Context, _ int64) ([]*domain.Service, error) {
	return f.active, f.err
}

type fakeCache struct {
	entries     map[string]*domain.Tenant
	getErr      error
	setErr      error
	sets        int
	invalidated []string
}

func (f *fakeCache) GetBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entries[slug], nil
}

func (f *fakeCache) Set(_ context.Context, t *domain.Tenant) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	if f.entries == nil {
		f.entries = map[string]*domain.Tenant{}
	}
	f.entries[t.Slug] = t
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, slug string) error {
	f.invalidated = append(f.invalidated, slug)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func tenantFixture() *domain.Tenant {
	return &domain.Tenant{
		ID:                  1,
		Slug:                "hangar-do-joao",
		Name:                "Hangar do João",
		Phone:               "+5511999990000",
		SlotIntervalMinutes: 60,
		BoxCapacity:         2,
	}
}

func TestGetBySlug_CacheHitSkipsRepository(t *testing.T) {
	tenant := tenantFixture()
	repo := &fakeTenants{bySlug: map[string]*domain.Tenant{tenant.Slug: tenant}}
	cache := &fakeCache{entries: map[string]*domain.Tenant{tenant.Slug: tenant}}
	svc := NewService(repo, &fakeServices{}, cache, nopLogger{})

	got, err := svc.GetBySlug(context.Background(), tenant.Slug)

	require.NoError(t, err)
	assert.Equal(t, tenant.ID, got.ID)
	assert.Equal(t, 0, repo.slugLooked)
}

func TestGetBySlug_CacheMissFillsCache(t *testing.T) {
	tenant := tenantFixture()
	repo := &fakeTenants{bySlug: map[string]*domain.Tenant{tenant.Slug: tenant}}
	cache := &fakeCache{}
	svc := NewService(repo, &fakeServices{}, cache, nopLogger{})

	got, err := svc.GetBySlug(context.Background(), tenant.Slug)

	require.NoError(t, err)
	assert.Equal(t, tenant.ID, got.ID)
	assert.Equal(t, 1, repo.slugLooked)
	assert.Equal(t, 1, cache.sets)
}

func TestGetBySlug_CacheFailureDegradesToRepository(t *testing.T) {
	tenant := tenantFixture()
	repo := &fakeTenants{bySlug: map[string]*domain.Tenant{tenant.Slug: tenant}}
	cache := &fakeCache{getErr: errors.New("redis: connection refused")}
	svc := NewService(repo, &fakeServices{}, cache, nopLogger{})

	got, err := svc.GetBySlug(context.Background(), tenant.Slug)

	require.NoError(t, err)
	assert.Equal(t, tenant.ID, got.ID)
	assert.Equal(t, 1, repo.slugLooked)
}

func TestGetBySlug_NilCache(t *testing.T) {
	tenant := tenantFixture()
	repo := &fakeTenants{bySlug: map[string]*domain.Tenant{tenant.Slug: tenant}}
	svc := NewService(repo, &fakeServices{}, nil, nopLogger{})

	got, err := svc.GetBySlug(context.Background(), tenant.Slug)

	require.NoError(t, err)
	assert.Equal(t, tenant.ID, got.ID)
}

func TestGetBySlug_NotFound(t *testing.T) {
	svc := NewService(&fakeTenants{}, &fakeServices{}, nil, nopLogger{})

	_, err := svc.GetBySlug(context.Background(), "nao-existe")

	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestGetByID_SkipsCache(t *testing.T) {
	tenant := tenantFixture()
	repo := &fakeTenants{byID: map[int64]*domain.Tenant{tenant.ID: tenant}}
	cache := &fakeCache{getErr: errors.New("must not be called")}
	svc := NewService(repo, &fakeServices{}, cache, nopLogger{})

	got, err := svc.GetByID(context.Background(), tenant.ID)

	require.NoError(t, err)
	assert.Equal(t, tenant.Slug, got.Slug)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeTenants{}, &fakeServices{}, nil, nopLogger{})

	_, err := svc.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestGetPublicProfile(t *testing.T) {
	tenant := tenantFixture()
	repo := &fakeTenants{bySlug: map[string]*domain.Tenant{tenant.Slug: tenant}}
	services := &fakeServices{active: []*domain.Service{
		{ID: 5, TenantID: 1, Name: "Lavagem completa", Price: 120, DurationMinutes: 90, Active: true},
		{ID: 6, TenantID: 1, Name: "Polimento", Price: 350, DurationMinutes: 180, Active: true},
	}}
	svc := NewService(repo, services, nil, nopLogger{})

	profile, err := svc.GetPublicProfile(context.Background(), tenant.Slug)

	require.NoError(t, err)
	assert.Equal(t, tenant.Slug, profile.Slug)
	assert.Equal(t, tenant.Name, profile.Name)
	require.Len(t, profile.Services, 2)
	assert.Equal(t, "Lavagem completa", profile.Services[0].Name)
	assert.Equal(t, 120.0, profile.Services[0].Price)
}

func TestGetPublicProfile_ServiceListFailure(t *testing.T) {
	tenant := tenantFixture()
	repo := &fakeTenants{bySlug: map[string]*domain.Tenant{tenant.Slug: tenant}}
	services := &fakeServices{err: errors.New("connection reset")}
	svc := NewService(repo, services, nil, nopLogger{})

	_, err := svc.GetPublicProfile(context.Background(), tenant.Slug)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestInvalidateSlug(t *testing.T) {
	cache := &fakeCache{}
	svc := NewService(&fakeTenants{}, &fakeServices{}, cache, nopLogger{})

	svc.InvalidateSlug(context.Background(), "hangar-do-joao")

	assert.Equal(t, []string{"hangar-do-joao"}, cache.invalidated)
}
