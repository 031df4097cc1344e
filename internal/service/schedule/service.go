package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hangarapp/hangar-booking/internal/domain"
	scheduleRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/schedule"
	tenantRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/tenant"
	"github.com/hangarapp/hangar-booking/internal/service/schedule/models"
)

// Service owns the tenant calendar configuration: weekly operating rules,
// blocked dates and the slot interval / box capacity pair. It also builds
// the resolved ScheduleConfig consumed by the availability and booking
// flows.
type Service struct {
	tenantRepo   TenantRepository
	scheduleRepo ScheduleRepository
	cache        TenantCache
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the schedule service. cache may be nil when Redis is
// disabled.
func NewService(
	tenantRepo TenantRepository,
	scheduleRepo ScheduleRepository,
	cache TenantCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		tenantRepo:   tenantRepo,
		scheduleRepo: scheduleRepo,
		cache:        cache,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ScheduleConfig loads and indexes everything the calendar resolver needs
// for one tenant. Blocked dates are loaded from today onward; past blocks
// only matter to history views, which read them separately.
func (s *Service) ScheduleConfig(ctx context.Context, tenant *domain.Tenant) (*domain.ScheduleConfig, error) {
	rules, err := s.scheduleRepo.GetOperatingRules(ctx, tenant.ID)
	if err != nil {
		s.logger.Error("ScheduleConfig: failed to get rules for tenant=%d: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: ScheduleConfig: %v", ErrInternal, err)
	}

	today := s.todayStart()
	blocked, err := s.scheduleRepo.GetBlockedDates(ctx, tenant.ID, &today)
	if err != nil {
		s.logger.Error("ScheduleConfig: failed to get blocked dates for tenant=%d: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: ScheduleConfig: %v", ErrInternal, err)
	}

	blockedIndex := make(map[string]domain.BlockedDate, len(blocked))
	for _, b := range blocked {
		blockedIndex[domain.DateKey(b.Date)] = b
	}

	return &domain.ScheduleConfig{
		Tenant:       *tenant,
		Rules:        domain.NewWeeklySchedule(rules),
		BlockedDates: blockedIndex,
	}, nil
}

// GetSchedule returns the tenant's full calendar configuration for the
// staff settings screen.
func (s *Service) GetSchedule(ctx context.Context, tenantID int64) (*models.ScheduleResponse, error) {
	tenant, err := s.getTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	rules, err := s.scheduleRepo.GetOperatingRules(ctx, tenantID)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get rules for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetSchedule: %v", ErrInternal, err)
	}

	today := s.todayStart()
	blocked, err := s.scheduleRepo.GetBlockedDates(ctx, tenantID, &today)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get blocked dates for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetSchedule: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(tenant, rules, blocked), nil
}

// UpdateSchedule replaces the weekly rules and the booking configuration
// atomically, then invalidates the cached tenant. Existing appointments
// are never touched: a schedule change only affects future availability.
func (s *Service) UpdateSchedule(ctx context.Context, tenantID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	tenant, err := s.getTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	rules, err := s.validateUpdate(tenantID, req)
	if err != nil {
		s.logger.Warn("UpdateSchedule: validation failed for tenant=%d: %v", tenantID, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.scheduleRepo.ReplaceOperatingRules(txCtx, tenantID, rules); err != nil {
			return fmt.Errorf("replace rules: %w", err)
		}
		if err := s.tenantRepo.UpdateBookingConfig(txCtx, tenantID, req.SlotIntervalMinutes, req.BoxCapacity); err != nil {
			return fmt.Errorf("update booking config: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateSchedule: transaction failed for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule: %v", ErrInternal, err)
	}

	s.invalidate(ctx, tenant.Slug)
	s.logger.Info("UpdateSchedule: tenant=%d rules=%d interval=%d capacity=%d",
		tenantID, len(rules), req.SlotIntervalMinutes, req.BoxCapacity)

	return s.GetSchedule(ctx, tenantID)
}

// AddBlockedDate blocks one calendar day. Blocking the same day twice
// updates the reason. Existing appointments on the day stay untouched;
// the tenant resolves them by hand.
func (s *Service) AddBlockedDate(ctx context.Context, tenantID int64, req *models.AddBlockedDateRequest) (*models.BlockedDateResponse, error) {
	if _, err := s.getTenant(ctx, tenantID); err != nil {
		return nil, err
	}

	date, err := req.ParseDate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	blocked, err := s.scheduleRepo.AddBlockedDate(ctx, &domain.BlockedDate{
		TenantID: tenantID,
		Date:     date,
		Reason:   req.Reason,
	})
	if err != nil {
		s.logger.Error("AddBlockedDate: failed for tenant=%d date=%s: %v", tenantID, req.Date, err)
		return nil, fmt.Errorf("%w: AddBlockedDate: %v", ErrInternal, err)
	}

	s.logger.Info("AddBlockedDate: tenant=%d date=%s", tenantID, req.Date)
	resp := models.FromDomainBlockedDate(*blocked)
	return &resp, nil
}

// RemoveBlockedDate reopens a blocked calendar day.
func (s *Service) RemoveBlockedDate(ctx context.Context, tenantID int64, dateStr string) error {
	if _, err := s.getTenant(ctx, tenantID); err != nil {
		return err
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return fmt.Errorf("%w: invalid date %q", ErrInvalidInput, dateStr)
	}

	if err := s.scheduleRepo.RemoveBlockedDate(ctx, tenantID, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("RemoveBlockedDate: tenant=%d date=%s not blocked", tenantID, dateStr)
			return ErrBlockedDateNotFound
		}
		s.logger.Error("RemoveBlockedDate: failed for tenant=%d date=%s: %v", tenantID, dateStr, err)
		return fmt.Errorf("%w: RemoveBlockedDate: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveBlockedDate: tenant=%d date=%s", tenantID, dateStr)
	return nil
}

func (s *Service) validateUpdate(tenantID int64, req *models.UpdateScheduleRequest) ([]domain.OperatingRule, error) {
	if req.SlotIntervalMinutes < domain.MinSlotIntervalMinutes || req.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return nil, fmt.Errorf("%w: slot interval %d outside [%d, %d]",
			ErrInvalidConfig, req.SlotIntervalMinutes, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}
	if req.BoxCapacity < domain.MinBoxCapacity || req.BoxCapacity > domain.MaxBoxCapacity {
		return nil, fmt.Errorf("%w: box capacity %d outside [%d, %d]",
			ErrInvalidConfig, req.BoxCapacity, domain.MinBoxCapacity, domain.MaxBoxCapacity)
	}

	rules := make([]domain.OperatingRule, 0, len(req.Rules))
	seen := make(map[int]bool, len(req.Rules))
	for _, input := range req.Rules {
		if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: day of week %d outside [0, 6]", ErrInvalidRule, input.DayOfWeek)
		}
		if seen[input.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate day of week %d", ErrInvalidRule, input.DayOfWeek)
		}
		seen[input.DayOfWeek] = true

		rule, err := input.ToDomain(tenantID)
		if err != nil {
			return nil, fmt.Errorf("%w: day %d: %v", ErrInvalidRule, input.DayOfWeek, err)
		}
		if rule.IsOpen && !rule.OpenTime.Before(rule.CloseTime) {
			return nil, fmt.Errorf("%w: day %d: open %s not before close %s",
				ErrInvalidRule, input.DayOfWeek, rule.OpenTime, rule.CloseTime)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (s *Service) getTenant(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("schedule: tenant id=%d not found", tenantID)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("schedule: failed to get tenant id=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: get tenant: %v", ErrInternal, err)
	}
	return tenant, nil
}

func (s *Service) invalidate(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slug); err != nil {
		s.logger.Warn("schedule: cache invalidation failed for slug=%q: %v", slug, err)
	}
}

func (s *Service) todayStart() time.Time {
	now := s.timeProvider.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
