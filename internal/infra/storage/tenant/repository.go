package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/hangarapp/hangar-booking/internal/domain"
	"github.com/hangarapp/hangar-booking/pkg/dbmetrics"
	"github.com/hangarapp/hangar-booking/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

var tenantColumns = []string{
	"id",
	"slug",
	"name",
	"phone",
	"slot_interval_minutes",
	"box_capacity",
	"created_at",
	"updated_at",
}

// Repository persists tenants and their booking configuration.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a tenant repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a tenant by primary key.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetBySlug fetches a tenant by its public micro-site slug.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

func (r *Repository) getOne(ctx context.Context, pred interface{}) (*domain.Tenant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tenantColumns...).
		From("tenants").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.Tenant
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.Slug,
		&t.Name,
		&t.Phone,
		&t.SlotIntervalMinutes,
		&t.BoxCapacity,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan tenant: %v", ErrScanRow, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return &t, nil
}

// UpdateBookingConfig changes the slot interval and box capacity. Value
// validation happens at the service layer.
func (r *Repository) UpdateBookingConfig(ctx context.Context, tenantID int64, slotIntervalMinutes, boxCapacity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tenants").
		Set("slot_interval_minutes", slotIntervalMinutes).
		Set("box_capacity", boxCapacity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateBookingConfig - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateBookingConfig - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateBookingConfig - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrTenantNotFound
	}
	return nil
}
