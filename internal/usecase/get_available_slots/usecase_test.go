package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarapp/hangar-booking/internal/domain"
	tenantRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/tenant"
	"github.com/hangarapp/hangar-booking/pkg/timeofday"
)

type fakeTenants struct {
	tenant *domain.Tenant
	err    error
}

func (f *fakeTenants) GetByID(_ context.Context, id int64) (*domain.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.tenant == nil || f.tenant.ID != id {
		return nil, tenantRepo.ErrTenantNotFound
	}
	return f.tenant, nil
}

func (f *fakeTenants) GetBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.tenant == nil || f.tenant.Slug != slug {
		return nil, tenantRepo.ErrTenantNotFound
	}
	return f.tenant, nil
}

type fakeSchedule struct {
	cfg *domain.ScheduleConfig
	err error
}

func (f *fakeSchedule) ScheduleConfig(_ context.Context, _ *domain.Tenant) (*domain.ScheduleConfig, error) {
	return f.cfg, f.err
}

type fakeAppointments struct {
	appointments []*domain.Appointment
	err          error
	lastFilter   domain.AppointmentsFilter
}

func (f *fakeAppointments) GetByTenantWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.appointments, f.err
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, s string) timeofday.TimeOfDay {
	t.Helper()
	tod, err := timeofday.Parse(s)
	require.NoError(t, err)
	return tod
}

func testTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:                  1,
		Slug:                "hangar-do-joao",
		Name:                "Hangar do João",
		SlotIntervalMinutes: 60,
		BoxCapacity:         2,
	}
}

func testConfig(t *testing.T, tenant *domain.Tenant) *domain.ScheduleConfig {
	// Open Monday through Friday, 08:00–12:00.
	rules := make([]domain.OperatingRule, 0, 5)
	for day := 1; day <= 5; day++ {
		rules = append(rules, domain.OperatingRule{
			TenantID:  tenant.ID,
			DayOfWeek: day,
			IsOpen:    true,
			OpenTime:  mustTime(t, "08:00"),
			CloseTime: mustTime(t, "12:00"),
		})
	}
	return &domain.ScheduleConfig{
		Tenant:       *tenant,
		Rules:        domain.NewWeeklySchedule(rules),
		BlockedDates: map[string]domain.BlockedDate{},
	}
}

func newTestUseCase(t *testing.T, tenants *fakeTenants, schedule *fakeSchedule, appointments *fakeAppointments) *UseCase {
	t.Helper()
	uc := NewUseCase(tenants, schedule, appointments, nopLogger{})
	uc.timeProvider = fixedClock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_OpenDayWithOccupancy(t *testing.T) {
	tenant := testTenant()
	// Monday 2025-03-03.
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	appointments := &fakeAppointments{appointments: []*domain.Appointment{
		{ID: 1, StartTime: mustTime(t, "09:00"), Status: domain.StatusNew},
		{ID: 2, StartTime: mustTime(t, "09:00"), Status: domain.StatusConfirmed},
		{ID: 3, StartTime: mustTime(t, "10:00"), Status: domain.StatusCancelled},
	}}
	uc := newTestUseCase(t,
		&fakeTenants{tenant: tenant},
		&fakeSchedule{cfg: testConfig(t, tenant)},
		appointments,
	)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: date})
	require.NoError(t, err)

	assert.Equal(t, domain.DayOpen, resp.DayStatus)
	require.Len(t, resp.Slots, 4)

	assert.Equal(t, "08:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, 0, resp.Slots[0].Count)
	assert.False(t, resp.Slots[0].IsFull)

	// Two active appointments at 09:00 fill capacity 2.
	assert.Equal(t, "09:00", resp.Slots[1].StartTime.String())
	assert.Equal(t, 2, resp.Slots[1].Count)
	assert.True(t, resp.Slots[1].IsFull)

	// The cancelled 10:00 appointment does not count.
	assert.Equal(t, 0, resp.Slots[2].Count)

	assert.Equal(t, tenant.ID, appointments.lastFilter.TenantID)
	require.NotNil(t, appointments.lastFilter.Date)
	assert.True(t, appointments.lastFilter.Date.Equal(date))
}

func TestExecute_ResolvesBySlug(t *testing.T) {
	tenant := testTenant()
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(t,
		&fakeTenants{tenant: tenant},
		&fakeSchedule{cfg: testConfig(t, tenant)},
		&fakeAppointments{},
	)

	resp, err := uc.Execute(context.Background(), &Request{Slug: "hangar-do-joao", Date: date})
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, resp.TenantID)
}

func TestExecute_ClosedWeekday(t *testing.T) {
	tenant := testTenant()
	// Sunday 2025-03-02: no rule.
	date := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	appointments := &fakeAppointments{err: errors.New("must not be called")}
	uc := newTestUseCase(t,
		&fakeTenants{tenant: tenant},
		&fakeSchedule{cfg: testConfig(t, tenant)},
		appointments,
	)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: date})
	require.NoError(t, err)
	assert.Equal(t, domain.DayClosed, resp.DayStatus)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BlockedDate(t *testing.T) {
	tenant := testTenant()
	// Monday 2025-03-03 blocked.
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	cfg := testConfig(t, tenant)
	cfg.BlockedDates[domain.DateKey(date)] = domain.BlockedDate{TenantID: tenant.ID, Date: date}

	uc := newTestUseCase(t,
		&fakeTenants{tenant: tenant},
		&fakeSchedule{cfg: cfg},
		&fakeAppointments{},
	)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: date})
	require.NoError(t, err)
	assert.Equal(t, domain.DayBlocked, resp.DayStatus)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDate(t *testing.T) {
	tenant := testTenant()
	uc := newTestUseCase(t,
		&fakeTenants{tenant: tenant},
		&fakeSchedule{cfg: testConfig(t, tenant)},
		&fakeAppointments{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		TenantID: 1,
		Date:     time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_TenantNotFound(t *testing.T) {
	uc := newTestUseCase(t,
		&fakeTenants{},
		&fakeSchedule{},
		&fakeAppointments{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		TenantID: 42,
		Date:     time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(t, &fakeTenants{}, &fakeSchedule{}, &fakeAppointments{})

	_, err := uc.Execute(context.Background(), &Request{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TenantID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InvalidInterval(t *testing.T) {
	tenant := testTenant()
	tenant.SlotIntervalMinutes = 0
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(t,
		&fakeTenants{tenant: tenant},
		&fakeSchedule{cfg: testConfig(t, tenant)},
		&fakeAppointments{},
	)

	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: date})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestExecute_StorageFailure(t *testing.T) {
	tenant := testTenant()
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(t,
		&fakeTenants{tenant: tenant},
		&fakeSchedule{cfg: testConfig(t, tenant)},
		&fakeAppointments{err: errors.New("connection refused")},
	)

	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: date})
	assert.ErrorIs(t, err, ErrPersistence)
}
