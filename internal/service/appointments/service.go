package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/hangarapp/hangar-booking/internal/domain"
	appointmentRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/appointment"
	tenantRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/tenant"
	"github.com/hangarapp/hangar-booking/internal/service/appointments/models"
)

// Service manages the staff-side appointment lifecycle: reads, status
// transitions and cancellation. Creation lives in the booking use case.
type Service struct {
	appointmentRepo AppointmentRepository
	tenantRepo      TenantRepository
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewService creates the appointments service. notifier may be nil when
// messaging is disabled.
func NewService(
	appointmentRepo AppointmentRepository,
	tenantRepo TenantRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		tenantRepo:      tenantRepo,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID fetches one appointment, scoped to the tenant. An appointment of
// another tenant is reported as not found, never as forbidden.
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.getOwned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appointment), nil
}

// GetByPublicRef fetches one appointment by its public uuid. Used by the
// public status page; not tenant scoped because the ref itself is the
// capability.
func (s *Service) GetByPublicRef(ctx context.Context, ref string) (*models.AppointmentResponse, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: public ref is required", ErrInvalidInput)
	}

	appointment, err := s.appointmentRepo.GetByPublicRef(ctx, ref)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByPublicRef: ref=%q not found", ref)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByPublicRef: repository error for ref=%q: %v", ref, err)
		return nil, fmt.Errorf("%w: GetByPublicRef: %v", ErrInternal, err)
	}
	return models.FromDomainAppointment(appointment), nil
}

// List fetches a tenant's agenda with filters: single day, period, status,
// optionally including cancelled appointments.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	if req.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	if req.Date != nil && (req.StartDate != nil || req.EndDate != nil) {
		return nil, fmt.Errorf("%w: date and period filters are mutually exclusive", ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: period end before start", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid status %v for tenant=%d", req.Status, req.TenantID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	appointments, err := s.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: List: %v", ErrInternal, err)
	}

	s.logger.Info("List: tenant=%d returned %d appointments", req.TenantID, len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// TransitionStatus moves an appointment along its lifecycle. The target
// status must be a forward edge of the state machine; cancellation goes
// through Cancel, which records the reason.
func (s *Service) TransitionStatus(ctx context.Context, tenantID, id int64, statusStr string) (*models.AppointmentResponse, error) {
	status, err := models.ToDomainStatus(statusStr)
	if err != nil {
		s.logger.Warn("TransitionStatus: unknown status %q for appointment id=%d", statusStr, id)
		return nil, ErrInvalidStatus
	}
	if status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: cancellation has its own operation", ErrInvalidTransition)
	}

	appointment, err := s.getOwned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(appointment.Status, status) {
		s.logger.Warn("TransitionStatus: %s -> %s not allowed for appointment id=%d",
			appointment.Status, status, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, status)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("TransitionStatus: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: TransitionStatus: %v", ErrInternal, err)
	}

	s.logger.Info("TransitionStatus: appointment id=%d %s -> %s", id, appointment.Status, status)

	appointment.Transition(status, s.timeProvider.Now())
	return models.FromDomainAppointment(appointment), nil
}

// Cancel cancels an appointment, freeing its slot. Allowed from any
// non-terminal status. The confirmation message is dispatched after the
// write, fire-and-forget.
func (s *Service) Cancel(ctx context.Context, tenantID, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	reason := ""
	if req != nil && req.Reason != nil {
		reason = *req.Reason
	}
	if len(reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	appointment, err := s.getOwned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d is %s and cannot be cancelled", id, appointment.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrCannotCancel, appointment.Status)
	}

	if err := s.appointmentRepo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: appointment id=%d cancelled, slot %s on %s freed",
		id, appointment.StartTime, appointment.Date.Format(domain.DateFormat))

	appointment.Transition(domain.StatusCancelled, s.timeProvider.Now())
	if reason != "" {
		appointment.CancellationReason = &reason
	}

	s.notifyCancelled(ctx, appointment)
	return models.FromDomainAppointment(appointment), nil
}

func (s *Service) notifyCancelled(ctx context.Context, appointment *domain.Appointment) {
	if s.notifier == nil {
		return
	}
	tenant, err := s.tenantRepo.GetByID(ctx, appointment.TenantID)
	if err != nil {
		if !errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("Cancel: failed to load tenant=%d for notification: %v", appointment.TenantID, err)
		}
		return
	}
	s.notifier.BookingCancelled(tenant, appointment)
}

// getOwned loads the appointment and enforces tenant ownership.
func (s *Service) getOwned(ctx context.Context, tenantID, id int64) (*domain.Appointment, error) {
	if tenantID <= 0 || id <= 0 {
		return nil, fmt.Errorf("%w: tenant id and appointment id are required", ErrInvalidInput)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("getOwned: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getOwned: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getOwned: %v", ErrInternal, err)
	}
	if appointment.TenantID != tenantID {
		s.logger.Warn("getOwned: appointment id=%d belongs to tenant=%d, not %d",
			id, appointment.TenantID, tenantID)
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}
