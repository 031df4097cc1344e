package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/hangarapp/hangar-booking/internal/domain"
	"github.com/hangarapp/hangar-booking/internal/scheduling"
	tenantRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/tenant"
)

// UseCase computes the availability view for one tenant day: calendar
// resolution, slot generation and occupancy, in that order.
type UseCase struct {
	tenants      TenantProvider
	schedule     ScheduleProvider
	appointments AppointmentRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	tenants TenantProvider,
	schedule ScheduleProvider,
	appointments AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		tenants:      tenants,
		schedule:     schedule,
		appointments: appointments,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the availability computation.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if scheduling.IsPastDate(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: past date %s", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	tenant, err := uc.resolveTenant(ctx, req)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.schedule.ScheduleConfig(ctx, tenant)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load schedule for tenant=%d: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: load schedule: %v", ErrPersistence, err)
	}

	dayStatus := scheduling.ResolveDay(cfg, req.Date)
	if dayStatus != domain.DayOpen {
		uc.logger.Info("GetAvailableSlots: tenant=%d date=%s is %s",
			tenant.ID, req.Date.Format(domain.DateFormat), dayStatus)
		return &Response{
			TenantID:  tenant.ID,
			Date:      req.Date,
			DayStatus: dayStatus,
			Slots:     []Slot{},
		}, nil
	}

	rule, _ := cfg.Rules.RuleFor(req.Date)
	slots, err := scheduling.GenerateSlots(rule.OpenTime, rule.CloseTime, tenant.SlotIntervalMinutes)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidInterval) {
			uc.logger.Error("GetAvailableSlots: tenant=%d has invalid slot interval %d",
				tenant.ID, tenant.SlotIntervalMinutes)
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return nil, fmt.Errorf("%w: generate slots: %v", ErrPersistence, err)
	}

	// Occupancy here is a display hint; the authoritative capacity
	// decision happens inside the booking commit.
	filter := domain.AppointmentsFilter{
		TenantID: tenant.ID,
		Date:     &req.Date,
	}
	appointments, err := uc.appointments.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for tenant=%d: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: get appointments: %v", ErrPersistence, err)
	}

	occupancy := scheduling.ComputeOccupancy(slots, appointments, tenant.BoxCapacity)

	result := make([]Slot, len(slots))
	for i, slot := range slots {
		occ := occupancy[slot]
		result[i] = Slot{
			StartTime: slot,
			Count:     occ.Count,
			Capacity:  occ.Capacity,
			IsFull:    occ.IsFull(),
		}
	}

	uc.logger.Info("GetAvailableSlots: tenant=%d date=%s slots=%d",
		tenant.ID, req.Date.Format(domain.DateFormat), len(result))

	return &Response{
		TenantID:  tenant.ID,
		Date:      req.Date,
		DayStatus: domain.DayOpen,
		Slots:     result,
	}, nil
}

func (uc *UseCase) resolveTenant(ctx context.Context, req *Request) (*domain.Tenant, error) {
	var (
		tenant *domain.Tenant
		err    error
	)
	if req.Slug != "" {
		tenant, err = uc.tenants.GetBySlug(ctx, req.Slug)
	} else {
		tenant, err = uc.tenants.GetByID(ctx, req.TenantID)
	}
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			uc.logger.Warn("GetAvailableSlots: tenant not found (id=%d, slug=%q)", req.TenantID, req.Slug)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve tenant: %v", err)
		return nil, fmt.Errorf("%w: resolve tenant: %v", ErrPersistence, err)
	}
	return tenant, nil
}

func validateRequest(req *Request) error {
	if req.TenantID <= 0 && req.Slug == "" {
		return fmt.Errorf("%w: tenant id or slug is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
