package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/hangarapp/hangar-booking/internal/domain"
	"github.com/hangarapp/hangar-booking/pkg/dbmetrics"
	"github.com/hangarapp/hangar-booking/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository persists the weekly operating rules and blocked dates of a
// tenant's calendar.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a schedule repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOperatingRules lists a tenant's weekly rules ordered by weekday.
func (r *Repository) GetOperatingRules(ctx context.Context, tenantID int64) ([]domain.OperatingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"day_of_week",
		"is_open",
		"open_time",
		"close_time",
	).
		From("operating_rules").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.OperatingRule, 0, 7)
	for rows.Next() {
		var rule domain.OperatingRule
		if err := rows.Scan(
			&rule.ID,
			&rule.TenantID,
			&rule.DayOfWeek,
			&rule.IsOpen,
			&rule.OpenTime,
			&rule.CloseTime,
		); err != nil {
			return nil, fmt.Errorf("%w: GetOperatingRules - scan rule: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOperatingRules - iterate rows: %v", ErrExecQuery, err)
	}
	return rules, nil
}

// ReplaceOperatingRules swaps a tenant's whole weekly schedule. Meant to be
// called inside a transaction so readers never observe a half-replaced week.
func (r *Repository) ReplaceOperatingRules(ctx context.Context, tenantID int64, rules []domain.OperatingRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("operating_rules").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOperatingRules - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceOperatingRules - execute delete: %v", ErrExecQuery, err)
	}

	if len(rules) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("operating_rules").
		Columns("tenant_id", "day_of_week", "is_open", "open_time", "close_time")
	for _, rule := range rules {
		insertBuilder = insertBuilder.Values(tenantID, rule.DayOfWeek, rule.IsOpen, rule.OpenTime, rule.CloseTime)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOperatingRules - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceOperatingRules - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// GetBlockedDates lists a tenant's blocked dates from the given date on.
// A nil from returns the full history.
func (r *Repository) GetBlockedDates(ctx context.Context, tenantID int64, from *time.Time) ([]domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"tenant_id",
		"date",
		"reason",
	).
		From("blocked_dates").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *from})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocked := make([]domain.BlockedDate, 0)
	for rows.Next() {
		var b domain.BlockedDate
		if err := rows.Scan(&b.ID, &b.TenantID, &b.Date, &b.Reason); err != nil {
			return nil, fmt.Errorf("%w: GetBlockedDates - scan blocked date: %v", ErrScanRow, err)
		}
		blocked = append(blocked, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDates - iterate rows: %v", ErrExecQuery, err)
	}
	return blocked, nil
}

// AddBlockedDate blocks a date. Re-blocking an already blocked date just
// updates the reason (upsert on the tenant+date unique key).
func (r *Repository) AddBlockedDate(ctx context.Context, b *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("tenant_id", "date", "reason").
		Values(b.TenantID, b.Date, b.Reason).
		Suffix("ON CONFLICT (tenant_id, date) DO UPDATE SET reason = EXCLUDED.reason RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID); err != nil {
		return nil, fmt.Errorf("%w: AddBlockedDate - execute insert: %v", ErrExecQuery, err)
	}
	return b, nil
}

// RemoveBlockedDate unblocks a date.
func (r *Repository) RemoveBlockedDate(ctx context.Context, tenantID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"tenant_id": tenantID, "date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBlockedDateNotFound
	}
	return nil
}
