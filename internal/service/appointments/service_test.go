package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarapp/hangar-booking/internal/domain"
	appointmentRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/appointment"
	tenantRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/tenant"
	"github.com/hangarapp/hangar-booking/internal/service/appointments/models"
	"github.com/hangarapp/hangar-booking/pkg/ptr"
	"github.com/hangarapp/hangar-booking/pkg/timeofday"
)

type fakeAppointmentRepo struct {
	byID map[int64]*domain.Appointment

	updatedStatus map[int64]domain.AppointmentStatus
	cancelled     map[int64]string
}

func newFakeAppointmentRepo(appointments ...*domain.Appointment) *fakeAppointmentRepo {
	f := &fakeAppointmentRepo{
		byID:          map[int64]*domain.Appointment{},
		updatedStatus: map[int64]domain.AppointmentStatus{},
		cancelled:     map[int64]string{},
	}
	for _, a := range appointments {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointmentRepo) GetByPublicRef(_ context.Context, ref string) (*domain.Appointment, error) {
	for _, a := range f.byID {
		if a.PublicRef == ref {
			copied := *a
			return &copied, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeAppointmentRepo) GetByTenantWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.byID {
		if a.TenantID != filter.TenantID {
			continue
		}
		if !filter.IncludeInactive && filter.Status == nil && a.Status == domain.StatusCancelled {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if _, ok := f.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.updatedStatus[id] = status
	f.byID[id].Status = status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := f.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.cancelled[id] = reason
	f.byID[id].Status = domain.StatusCancelled
	return nil
}

type fakeTenantRepo struct {
	tenant *domain.Tenant
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id int64) (*domain.Tenant, error) {
	if f.tenant == nil || f.tenant.ID != id {
		return nil, tenantRepo.ErrTenantNotFound
	}
	return f.tenant, nil
}

type fakeNotifier struct {
	cancelled []*domain.Appointment
}

func (f *fakeNotifier) BookingCancelled(_ *domain.Tenant, a *domain.Appointment) {
	f.cancelled = append(f.cancelled, a)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testAppointment(id int64, status domain.AppointmentStatus) *domain.Appointment {
	start, _ := timeofday.Parse("09:00")
	return &domain.Appointment{
		ID:        id,
		PublicRef: "ref-1",
		TenantID:  1,
		Date:      time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime: start,
		Status:    status,
	}
}

func newTestService(repo *fakeAppointmentRepo, notifier *fakeNotifier) *Service {
	// A nil *fakeNotifier must become a nil Notifier interface, not a
	// non-nil interface wrapping a nil pointer.
	var n Notifier
	if notifier != nil {
		n = notifier
	}
	svc := NewService(repo, &fakeTenantRepo{tenant: &domain.Tenant{ID: 1, Name: "Hangar"}}, n, nopLogger{})
	svc.timeProvider = fixedClock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	return svc
}

func TestTransitionStatus_AllowedEdge(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, domain.StatusNew))
	svc := newTestService(repo, nil)

	resp, err := svc.TransitionStatus(context.Background(), 1, 1, "CONFIRMADO")
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMADO", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus[1])
}

func TestTransitionStatus_SkipConfirmationRejected(t *testing.T) {
	// Execution starts from CONFIRMADO only; there is no shortcut past the
	// confirmation step.
	repo := newFakeAppointmentRepo(testAppointment(1, domain.StatusNew))
	svc := newTestService(repo, nil)

	_, err := svc.TransitionStatus(context.Background(), 1, 1, "EM_EXECUCAO")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, repo.updatedStatus)
}

func TestTransitionStatus_InvalidEdge(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, domain.StatusNew))
	svc := newTestService(repo, nil)

	_, err := svc.TransitionStatus(context.Background(), 1, 1, "FINALIZADO")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, repo.updatedStatus)
}

func TestTransitionStatus_SelfTransition(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, domain.StatusConfirmed))
	svc := newTestService(repo, nil)

	_, err := svc.TransitionStatus(context.Background(), 1, 1, "CONFIRMADO")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionStatus_TerminalState(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, domain.StatusCompleted))
	svc := newTestService(repo, nil)

	_, err := svc.TransitionStatus(context.Background(), 1, 1, "EM_EXECUCAO")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionStatus_CancellationRejected(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, domain.StatusNew))
	svc := newTestService(repo, nil)

	_, err := svc.TransitionStatus(context.Background(), 1, 1, "CANCELADO")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionStatus_UnknownStatus(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, domain.StatusNew))
	svc := newTestService(repo, nil)

	_, err := svc.TransitionStatus(context.Background(), 1, 1, "AGENDADO")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTransitionStatus_TenantScoping(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, domain.StatusNew))
	svc := newTestService(repo, nil)

	_, err := svc.TransitionStatus(context.Background(), 99, 1, "CONFIRMADO")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_FromEachActiveStatus(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusNew, domain.StatusConfirmed, domain.StatusInProgress,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeAppointmentRepo(testAppointment(1, status))
			notifier := &fakeNotifier{}
			svc := newTestService(repo, notifier)

			resp, err := svc.Cancel(context.Background(), 1, 1, &models.CancelRequest{
				Reason: ptr.Ptr("cliente desistiu"),
			})
			require.NoError(t, err)
			assert.Equal(t, "CANCELADO", resp.Status)
			require.NotNil(t, resp.CancellationReason)
			assert.Equal(t, "cliente desistiu", *resp.CancellationReason)
			assert.NotNil(t, resp.CancelledAt)
			assert.Equal(t, "cliente desistiu", repo.cancelled[1])
			assert.Len(t, notifier.cancelled, 1)
		})
	}
}

func TestCancel_TerminalStates(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusCompleted, domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeAppointmentRepo(testAppointment(1, status))
			svc := newTestService(repo, nil)

			_, err := svc.Cancel(context.Background(), 1, 1, nil)
			assert.ErrorIs(t, err, ErrCannotCancel)
			assert.Empty(t, repo.cancelled)
		})
	}
}

func TestCancel_WithoutReason(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, domain.StatusNew))
	svc := newTestService(repo, nil)

	resp, err := svc.Cancel(context.Background(), 1, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "CANCELADO", resp.Status)
	assert.Nil(t, resp.CancellationReason)
}

func TestGetByID_TenantScoping(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, domain.StatusNew))
	svc := newTestService(repo, nil)

	_, err := svc.GetByID(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	resp, err := svc.GetByID(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestGetByPublicRef(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, domain.StatusNew))
	svc := newTestService(repo, nil)

	resp, err := svc.GetByPublicRef(context.Background(), "ref-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByPublicRef(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_Validation(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := newTestService(repo, nil)

	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	earlier := date.AddDate(0, 0, -7)

	_, err := svc.List(context.Background(), &models.ListRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListRequest{
		TenantID: 1, Date: &date, StartDate: &earlier,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListRequest{
		TenantID: 1, StartDate: &date, EndDate: &earlier,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListRequest{
		TenantID: 1, Status: ptr.Ptr("AGENDADO"),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestList_ExcludesCancelledByDefault(t *testing.T) {
	active := testAppointment(1, domain.StatusNew)
	cancelled := testAppointment(2, domain.StatusCancelled)
	repo := newFakeAppointmentRepo(active, cancelled)
	svc := newTestService(repo, nil)

	resp, err := svc.List(context.Background(), &models.ListRequest{TenantID: 1})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(1), resp.Appointments[0].ID)

	resp, err = svc.List(context.Background(), &models.ListRequest{TenantID: 1, IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)
}
