package appointment

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

var appointmentColumns = []string{
	"id",
	"public_ref",
	"tenant_id",
	"customer_id",
	"vehicle_id",
	"service_id",
	"date",
	"start_time",
	"duration_minutes",
	"price",
	"status",
	"observation",
	"service_name",
	"customer_name",
	"customer_phone",
	"vehicle_brand",
	"vehicle_model",
	"vehicle_plate",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository persists appointments.
type Repository struct {
	db DBExecutor
}

// NewRepository creates an appointment repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new appointment. Joins an open transaction when the
// context carries one; the booking commit relies on that for its capacity
// re-check.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"public_ref",
			"tenant_id",
			"customer_id",
			"vehicle_id",
			"service_id",
			"date",
			"start_time",
			"duration_minutes",
			"price",
			"status",
			"observation",
			"service_name",
			"customer_name",
			"customer_phone",
			"vehicle_brand",
			"vehicle_model",
			"vehicle_plate",
		).
		Values(
			a.PublicRef,
			a.TenantID,
			a.CustomerID,
			a.VehicleID,
			a.ServiceID,
			a.Date,
			a.StartTime,
			a.DurationMinutes,
			a.Price,
			a.Status,
			a.Observation,
			a.ServiceName,
			a.CustomerName,
			a.CustomerPhone,
			a.VehicleBrand,
			a.VehicleModel,
			a.VehiclePlate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID fetches one appointment by primary key.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByPublicRef fetches one appointment by its public reference, used by
// confirmation links on the micro-site.
func (r *Repository) GetByPublicRef(ctx context.Context, ref string) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"public_ref": ref})
}

func (r *Repository) getOne(ctx context.Context, pred interface{}) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	a, err := scanAppointment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan appointment: %v", ErrScanRow, err)
	}
	return a, nil
}

// GetByTenantWithFilter lists a tenant's appointments.
//
// When the context carries a transaction and the filter pins a single date,
// the rows are locked with FOR UPDATE: that is the booking commit reading
// the day's occupancy before inserting.
func (r *Repository) GetByTenantWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	singleDate := filter.Date != nil
	if singleDate {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": *filter.Date})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus persists a lifecycle transition. The transition itself is
// validated by the service layer; this only writes.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// Cancel marks the appointment cancelled with a reason and timestamp.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// RevenueRow is one aggregation bucket of the revenue report query.
type RevenueRow struct {
	Date        string
	ServiceName string
	Count       int
	Total       float64
}

// RevenueByDay aggregates completed appointments per day and service over
// the period, feeding the financial report.
func (r *Repository) RevenueByDay(ctx context.Context, tenantID int64, from, to string) ([]RevenueRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"to_char(date, 'YYYY-MM-DD') AS day",
		"service_name",
		"COUNT(*)",
		"COALESCE(SUM(price), 0)",
	).
		From("appointments").
		Where(squirrel.Eq{"tenant_id": tenantID, "status": domain.StatusCompleted}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		GroupBy("day", "service_name").
		OrderBy("day ASC, service_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: RevenueByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RevenueByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]RevenueRow, 0)
	for rows.Next() {
		var row RevenueRow
		if err := rows.Scan(&row.Date, &row.ServiceName, &row.Count, &row.Total); err != nil {
			return nil, fmt.Errorf("%w: RevenueByDay - scan row: %v", ErrScanRow, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: RevenueByDay - iterate rows: %v", ErrExecQuery, err)
	}
	return result, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scan appointment: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrExecQuery, err)
	}
	return appointments, nil
}

func scanAppointment(scan func(dest ...interface{}) error) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&a.ID,
		&a.PublicRef,
		&a.TenantID,
		&a.CustomerID,
		&a.VehicleID,
		&a.ServiceID,
		&a.Date,
		&a.StartTime,
		&a.DurationMinutes,
		&a.Price,
		&a.Status,
		&a.Observation,
		&a.ServiceName,
		&a.CustomerName,
		&a.CustomerPhone,
		&a.VehicleBrand,
		&a.VehicleModel,
		&a.VehiclePlate,
		&a.CancellationReason,
		&a.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return &a, nil
}
