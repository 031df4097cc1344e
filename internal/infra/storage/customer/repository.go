package customer

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

// Repository persists customers and their vehicles.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a customer repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateCustomer inserts a new customer for a tenant.
func (r *Repository) CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("tenant_id", "name", "phone", "email").
		Values(c.TenantID, c.Name, c.Phone, c.Email).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCustomer - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCustomer - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return c, nil
}

// GetCustomer fetches a customer by id.
func (r *Repository) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"name",
		"phone",
		"email",
		"created_at",
		"updated_at",
	).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomer - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.TenantID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomer - scan customer: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return &c, nil
}

// CreateVehicle inserts a vehicle for a customer.
func (r *Repository) CreateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vehicles").
		Columns("customer_id", "brand", "model", "plate").
		Values(v.CustomerID, v.Brand, v.Model, v.Plate).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateVehicle - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&v.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateVehicle - execute insert: %v", ErrExecQuery, err)
	}

	v.CreatedAt = createdAt.Time
	return v, nil
}

// GetVehicle fetches a vehicle by id.
func (r *Repository) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"customer_id",
		"brand",
		"model",
		"plate",
		"created_at",
	).
		From("vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicle - build select query: %v", ErrBuildQuery, err)
	}

	var v domain.Vehicle
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.ID,
		&v.CustomerID,
		&v.Brand,
		&v.Model,
		&v.Plate,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicle - scan vehicle: %v", ErrScanRow, err)
	}

	v.CreatedAt = createdAt.Time
	return &v, nil
}
