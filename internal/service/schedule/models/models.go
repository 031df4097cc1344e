package models

import (
	"errors"
	"time"

	"github.com/hangarapp/hangar-booking/internal/domain"
	"github.com/hangarapp/hangar-booking/pkg/timeofday"
)

var (
	// ErrInvalidTime is returned for a time outside "HH:MM".
	ErrInvalidTime = errors.New("invalid time format")

	// ErrInvalidDate is returned for a date outside "YYYY-MM-DD".
	ErrInvalidDate = errors.New("invalid date format")
)

// RuleInput is one weekday's opening window in an update request.
type RuleInput struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = Sunday ... 6 = Saturday
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`  // "08:00"
	CloseTime string `json:"closeTime"` // "18:00"
}

// ToDomain parses and converts the rule.
func (r *RuleInput) ToDomain(tenantID int64) (domain.OperatingRule, error) {
	rule := domain.OperatingRule{
		TenantID:  tenantID,
		DayOfWeek: r.DayOfWeek,
		IsOpen:    r.IsOpen,
	}
	if !r.IsOpen {
		return rule, nil
	}

	open, err := timeofday.Parse(r.OpenTime)
	if err != nil {
		return rule, ErrInvalidTime
	}
	close, err := timeofday.Parse(r.CloseTime)
	if err != nil {
		return rule, ErrInvalidTime
	}
	rule.OpenTime = open
	rule.CloseTime = close
	return rule, nil
}

// UpdateScheduleRequest replaces the tenant's full weekly schedule and
// booking configuration in one atomic write.
type UpdateScheduleRequest struct {
	SlotIntervalMinutes int         `json:"slotIntervalMinutes"`
	BoxCapacity         int         `json:"boxCapacity"`
	Rules               []RuleInput `json:"rules"`
}

// AddBlockedDateRequest blocks one calendar day.
type AddBlockedDateRequest struct {
	Date   string  `json:"date"` // "2025-12-25"
	Reason *string `json:"reason,omitempty"`
}

// ParseDate parses the request date.
func (r *AddBlockedDateRequest) ParseDate() (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// RuleResponse is one weekday's opening window.
type RuleResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

// BlockedDateResponse is one blocked calendar day.
type BlockedDateResponse struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// ScheduleResponse is the tenant's full calendar configuration.
type ScheduleResponse struct {
	TenantID            int64                 `json:"tenantId"`
	SlotIntervalMinutes int                   `json:"slotIntervalMinutes"`
	BoxCapacity         int                   `json:"boxCapacity"`
	Rules               []RuleResponse        `json:"rules"`
	BlockedDates        []BlockedDateResponse `json:"blockedDates"`
}

// FromDomainRule converts an operating rule.
func FromDomainRule(r domain.OperatingRule) RuleResponse {
	resp := RuleResponse{
		DayOfWeek: r.DayOfWeek,
		IsOpen:    r.IsOpen,
	}
	if r.IsOpen {
		resp.OpenTime = r.OpenTime.String()
		resp.CloseTime = r.CloseTime.String()
	}
	return resp
}

// FromDomainBlockedDate converts a blocked date.
func FromDomainBlockedDate(b domain.BlockedDate) BlockedDateResponse {
	return BlockedDateResponse{
		ID:     b.ID,
		Date:   b.Date.Format(domain.DateFormat),
		Reason: b.Reason,
	}
}

// FromDomainSchedule builds the full schedule DTO.
func FromDomainSchedule(t *domain.Tenant, rules []domain.OperatingRule, blocked []domain.BlockedDate) *ScheduleResponse {
	resp := &ScheduleResponse{
		TenantID:            t.ID,
		SlotIntervalMinutes: t.SlotIntervalMinutes,
		BoxCapacity:         t.BoxCapacity,
		Rules:               make([]RuleResponse, 0, len(rules)),
		BlockedDates:        make([]BlockedDateResponse, 0, len(blocked)),
	}
	for _, r := range rules {
		resp.Rules = append(resp.Rules, FromDomainRule(r))
	}
	for _, b := range blocked {
		resp.BlockedDates = append(resp.BlockedDates, FromDomainBlockedDate(b))
	}
	return resp
}
