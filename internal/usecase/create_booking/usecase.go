package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hangarapp/hangar-booking/internal/domain"
	customerRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/customer"
	serviceRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/service"
	tenantRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/tenant"
	"github.com/hangarapp/hangar-booking/internal/scheduling"
)

// UseCase commits one booking: calendar resolution, slot validation,
// capacity check, optional inline customer creation, appointment insert.
type UseCase struct {
	tenants      TenantProvider
	schedule     ScheduleProvider
	appointments AppointmentRepository
	services     ServiceRepository
	customers    CustomerRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case. notifier and metrics may be nil when
// those subsystems are disabled.
func NewUseCase(
	tenants TenantProvider,
	schedule ScheduleProvider,
	appointments AppointmentRepository,
	services ServiceRepository,
	customers CustomerRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		tenants:      tenants,
		schedule:     schedule,
		appointments: appointments,
		services:     services,
		customers:    customers,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the booking commit.
//
// Preconditions (open day, valid slot, free capacity) are checked on fresh
// reads first. Customer and vehicle writes happen next, before the insert.
// The insert re-checks capacity inside a serializable transaction with the
// day's rows locked, since two concurrent commits can both pass the
// pre-check. If the insert fails after inline records were created they
// stay in place and are reported through OrphanRecordError.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%d slug=%q service=%d date=%s time=%s source=%s",
		req.TenantID, req.Slug, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.Source)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if scheduling.IsPastDate(req.Date, now) {
		uc.logger.Warn("CreateBooking: past date %s", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	tenant, err := uc.resolveTenant(ctx, req)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.schedule.ScheduleConfig(ctx, tenant)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load schedule for tenant=%d: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: load schedule: %v", ErrPersistence, err)
	}

	// Precondition 1: the day must resolve OPEN. BLOCKED counts as closed
	// for booking purposes.
	if status := scheduling.ResolveDay(cfg, req.Date); status != domain.DayOpen {
		uc.logger.Warn("CreateBooking: tenant=%d date=%s is %s",
			tenant.ID, req.Date.Format(domain.DateFormat), status)
		return nil, ErrClosedDay
	}

	// Precondition 2: the requested time must be one of the day's slots.
	rule, _ := cfg.Rules.RuleFor(req.Date)
	slots, err := scheduling.GenerateSlots(rule.OpenTime, rule.CloseTime, tenant.SlotIntervalMinutes)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidInterval) {
			uc.logger.Error("CreateBooking: tenant=%d has invalid slot interval %d",
				tenant.ID, tenant.SlotIntervalMinutes)
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return nil, fmt.Errorf("%w: generate slots: %v", ErrPersistence, err)
	}
	if !scheduling.ContainsSlot(slots, req.StartTime) {
		uc.logger.Warn("CreateBooking: tenant=%d time=%s is not a slot", tenant.ID, req.StartTime)
		return nil, ErrInvalidSlot
	}

	service, err := uc.resolveService(ctx, tenant.ID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// Precondition 3, best-effort pass: a fresh occupancy read before any
	// write. The authoritative check repeats inside the transaction.
	dayAppointments, err := uc.appointments.GetByTenantWithFilter(ctx, domain.AppointmentsFilter{
		TenantID: tenant.ID,
		Date:     &req.Date,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to read occupancy for tenant=%d: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: read occupancy: %v", ErrPersistence, err)
	}
	if scheduling.CountAt(dayAppointments, req.StartTime) >= tenant.BoxCapacity {
		uc.logger.Warn("CreateBooking: tenant=%d slot %s already full", tenant.ID, req.StartTime)
		return nil, ErrSlotFull
	}

	customer, vehicle, inlineCreated, err := uc.resolveCustomer(ctx, tenant, req)
	if err != nil {
		return nil, err
	}

	appointment := buildAppointment(tenant, service, customer, vehicle, req)

	var created *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Re-read with the day's rows locked and re-check capacity: the
		// pre-check above may have raced another commit.
		locked, err := uc.appointments.GetByTenantWithFilter(txCtx, domain.AppointmentsFilter{
			TenantID: tenant.ID,
			Date:     &req.Date,
		})
		if err != nil {
			return fmt.Errorf("%w: read occupancy in transaction: %v", ErrPersistence, err)
		}
		occupied := scheduling.CountAt(locked, req.StartTime)
		if occupied >= tenant.BoxCapacity {
			uc.logger.Warn("CreateBooking: tenant=%d slot %s filled concurrently, %d/%d",
				tenant.ID, req.StartTime, occupied, tenant.BoxCapacity)
			return ErrSlotFull
		}

		created, err = uc.appointments.Create(txCtx, appointment)
		if err != nil {
			return fmt.Errorf("%w: insert appointment: %v", ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		if inlineCreated {
			// The customer/vehicle writes are not part of the transaction
			// and stay in place. Surface them so the caller can offer a
			// retry that reuses the records.
			orphan := &OrphanRecordError{
				CustomerID: customer.ID,
				VehicleID:  vehicleID(vehicle),
				Cause:      err,
			}
			uc.logger.Warn("CreateBooking: %v", orphan)
			return nil, orphan
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created appointment id=%d ref=%s tenant=%d",
		created.ID, created.PublicRef, tenant.ID)

	if uc.metrics != nil {
		uc.metrics.IncAppointmentCreated(req.Source)
	}
	if uc.notifier != nil {
		uc.notifier.BookingConfirmed(tenant, created)
	}

	return toResponse(created), nil
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
			uc.logger.Warn("CreateBooking: tenant not found (id=%d, slug=%q)", req.TenantID, req.Slug)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("CreateBooking: failed to resolve tenant: %v", err)
		return nil, fmt.Errorf("%w: resolve tenant: %v", ErrPersistence, err)
	}
	return tenant, nil
}

func (uc *UseCase) resolveService(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error) {
	service, err := uc.services.GetByID(ctx, tenantID, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found for tenant=%d", serviceID, tenantID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: get service: %v", ErrPersistence, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", serviceID)
		return nil, ErrServiceInactive
	}
	return service, nil
}

// resolveCustomer returns the customer and optional vehicle for the
// booking. The boolean reports whether records were created inline, which
// drives orphan reporting on a later failure.
func (uc *UseCase) resolveCustomer(ctx context.Context, tenant *domain.Tenant, req *Request) (*domain.Customer, *domain.Vehicle, bool, error) {
	if req.NewCustomer == nil {
		return uc.loadExistingCustomer(ctx, tenant, req)
	}

	customer, err := uc.customers.CreateCustomer(ctx, &domain.Customer{
		TenantID: tenant.ID,
		Name:     req.NewCustomer.Name,
		Phone:    req.NewCustomer.Phone,
		Email:    req.NewCustomer.Email,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create customer: %v", err)
		return nil, nil, false, fmt.Errorf("%w: create customer: %v", ErrPersistence, err)
	}

	var vehicle *domain.Vehicle
	if req.NewCustomer.Vehicle != nil {
		vehicle, err = uc.customers.CreateVehicle(ctx, &domain.Vehicle{
			CustomerID: customer.ID,
			Brand:      req.NewCustomer.Vehicle.Brand,
			Model:      req.NewCustomer.Vehicle.Model,
			Plate:      req.NewCustomer.Vehicle.Plate,
		})
		if err != nil {
			// The customer is already persisted: this is the first orphan
			// window.
			orphan := &OrphanRecordError{
				CustomerID: customer.ID,
				Cause:      fmt.Errorf("%w: create vehicle: %v", ErrPersistence, err),
			}
			uc.logger.Warn("CreateBooking: %v", orphan)
			return nil, nil, false, orphan
		}
	}

	return customer, vehicle, true, nil
}

func (uc *UseCase) loadExistingCustomer(ctx context.Context, tenant *domain.Tenant, req *Request) (*domain.Customer, *domain.Vehicle, bool, error) {
	customer, err := uc.customers.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
			return nil, nil, false, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, nil, false, fmt.Errorf("%w: get customer: %v", ErrPersistence, err)
	}
	// Row-level ownership: a customer from another tenant is treated as
	// nonexistent, not as forbidden.
	if customer.TenantID != tenant.ID {
		uc.logger.Warn("CreateBooking: customer id=%d belongs to tenant=%d, not %d",
			customer.ID, customer.TenantID, tenant.ID)
		return nil, nil, false, ErrCustomerNotFound
	}

	var vehicle *domain.Vehicle
	if req.VehicleID != nil {
		vehicle, err = uc.customers.GetVehicle(ctx, *req.VehicleID)
		if err != nil {
			if errors.Is(err, customerRepo.ErrVehicleNotFound) {
				uc.logger.Warn("CreateBooking: vehicle id=%d not found", *req.VehicleID)
				return nil, nil, false, ErrVehicleNotFound
			}
			uc.logger.Error("CreateBooking: failed to get vehicle id=%d: %v", *req.VehicleID, err)
			return nil, nil, false, fmt.Errorf("%w: get vehicle: %v", ErrPersistence, err)
		}
		if vehicle.CustomerID != customer.ID {
			uc.logger.Warn("CreateBooking: vehicle id=%d belongs to customer=%d, not %d",
				vehicle.ID, vehicle.CustomerID, customer.ID)
			return nil, nil, false, ErrVehicleNotOwned
		}
	}

	return customer, vehicle, false, nil
}

func buildAppointment(
	tenant *domain.Tenant,
	service *domain.Service,
	customer *domain.Customer,
	vehicle *domain.Vehicle,
	req *Request,
) *domain.Appointment {
	a := &domain.Appointment{
		PublicRef:       uuid.NewString(),
		TenantID:        tenant.ID,
		CustomerID:      customer.ID,
		VehicleID:       vehicleID(vehicle),
		ServiceID:       service.ID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: service.DurationMinutes,
		Price:           service.Price,
		Status:          domain.StatusNew,
		Observation:     req.Observation,
		ServiceName:     service.Name,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
	}
	if vehicle != nil {
		a.VehicleBrand = &vehicle.Brand
		a.VehicleModel = &vehicle.Model
		a.VehiclePlate = vehicle.Plate
	}
	return a
}

func vehicleID(v *domain.Vehicle) *int64 {
	if v == nil {
		return nil
	}
	return &v.ID
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		PublicRef:       a.PublicRef,
		TenantID:        a.TenantID,
		CustomerID:      a.CustomerID,
		VehicleID:       a.VehicleID,
		ServiceID:       a.ServiceID,
		Date:            a.Date,
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		Price:           a.Price,
		Status:          string(a.Status),
		Observation:     a.Observation,
		ServiceName:     a.ServiceName,
		CustomerName:    a.CustomerName,
		CustomerPhone:   a.CustomerPhone,
		VehicleBrand:    a.VehicleBrand,
		VehicleModel:    a.VehicleModel,
		VehiclePlate:    a.VehiclePlate,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
