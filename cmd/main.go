package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	addBlockedDateHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/add_blocked_date"
	cancelAppointmentHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/create_appointment"
	createPublicBookingHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/create_public_booking"
	getAppointmentHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/get_available_slots"
	getBookingStatusHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/get_booking_status"
	getHangarProfileHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/get_hangar_profile"
	getRevenueReportHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/get_revenue_report"
	getScheduleHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/get_schedule"
	listAppointmentsHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/list_appointments"
	removeBlockedDateHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/remove_blocked_date"
	updateAppointmentStatusHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/update_appointment_status"
	updateScheduleHandler "github.com/hangarapp/hangar-booking/internal/api/handlers/update_schedule"
	"github.com/hangarapp/hangar-booking/internal/api/middleware"
	"github.com/hangarapp/hangar-booking/internal/config"
	"github.com/hangarapp/hangar-booking/internal/infra/cache"
	appointmentRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/appointment"
	customerRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/customer"
	scheduleRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/schedule"
	serviceRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/service"
	tenantRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/tenant"
	"github.com/hangarapp/hangar-booking/internal/integrations/whatsgw"
	"github.com/hangarapp/hangar-booking/internal/notify"
	appointmentsService "github.com/hangarapp/hangar-booking/internal/service/appointments"
	reportsService "github.com/hangarapp/hangar-booking/internal/service/reports"
	scheduleService "github.com/hangarapp/hangar-booking/internal/service/schedule"
	tenantsService "github.com/hangarapp/hangar-booking/internal/service/tenants"
	createBookingUC "github.com/hangarapp/hangar-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/hangarapp/hangar-booking/internal/usecase/get_available_slots"
	"github.com/hangarapp/hangar-booking/pkg/dbmetrics"
	"github.com/hangarapp/hangar-booking/pkg/logger"
	"github.com/hangarapp/hangar-booking/pkg/metrics"
	"github.com/hangarapp/hangar-booking/pkg/simpletxmanager"
	"github.com/hangarapp/hangar-booking/pkg/txmanager"
)

func main() {
	// .env is optional, deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting hangar-booking...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Tenant cache is optional: without Redis every public slug lookup
	// goes to the database.
	var tenantCache *cache.TenantCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		tenantCache = cache.NewTenantCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		log.Info("Tenant cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// WhatsApp notifications are optional too; with a nil sender the
	// dispatcher only counts skipped sends.
	var sender notify.Sender
	if cfg.Notify.Enabled {
		sender = whatsgw.NewClient(
			cfg.Notify.BaseURL,
			cfg.Notify.APIKey,
			time.Duration(cfg.Notify.Timeout)*time.Second,
			cfg.Notify.MessagesPerSecond,
			log,
		)
		log.Info("WhatsApp notifications enabled (gateway=%s, rate=%.1f msg/s)",
			cfg.Notify.BaseURL, cfg.Notify.MessagesPerSecond)
	}
	var notifyMetrics notify.Metrics
	if metricsCollector != nil {
		notifyMetrics = metricsCollector
	}
	dispatcher := notify.NewDispatcher(sender, notifyMetrics, log)

	// Transaction manager interface shared by the schedule service and the
	// booking usecase.
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		tenantRepository      *tenantRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		serviceRepository     *serviceRepo.Repository
		customerRepository    *customerRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		tenantRepository = tenantRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		tenantRepository = tenantRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Services. The cache arguments stay nil interfaces when Redis is
	// disabled, so the services skip caching entirely.
	var tenantsCacheArg tenantsService.TenantCache
	var scheduleCacheArg scheduleService.TenantCache
	if tenantCache != nil {
		tenantsCacheArg = tenantCache
		scheduleCacheArg = tenantCache
	}

	tenantsSvc := tenantsService.NewService(tenantRepository, serviceRepository, tenantsCacheArg, log)
	scheduleSvc := scheduleService.NewService(tenantRepository, scheduleRepository, scheduleCacheArg, txMgr, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, tenantRepository, dispatcher, log)
	reportsSvc := reportsService.NewService(appointmentRepository, tenantRepository, log)

	// Use cases
	var bookingMetrics createBookingUC.Metrics
	if metricsCollector != nil {
		bookingMetrics = metricsCollector
	}

	createBookingUseCase := createBookingUC.NewUseCase(
		tenantsSvc,
		scheduleSvc,
		appointmentRepository,
		serviceRepository,
		customerRepository,
		txMgr,
		dispatcher,
		bookingMetrics,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		tenantsSvc,
		scheduleSvc,
		appointmentRepository,
		log,
	)

	// Handlers
	getHangarProfile := getHangarProfileHandler.NewHandler(tenantsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createPublicBooking := createPublicBookingHandler.NewHandler(createBookingUseCase, log)
	getBookingStatus := getBookingStatusHandler.NewHandler(appointmentsSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createBookingUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	addBlockedDate := addBlockedDateHandler.NewHandler(scheduleSvc, log)
	removeBlockedDate := removeBlockedDateHandler.NewHandler(scheduleSvc, log)
	getRevenueReport := getRevenueReportHandler.NewHandler(reportsSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (public, no authentication)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (the booking micro-site, no authentication)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.RateLimit(cfg.Server.PublicRateLimit, cfg.Server.PublicRateBurst))

	// Hangar profile with active services
	public.HandleFunc("/hangars/{slug}", getHangarProfile.Handle).Methods(http.MethodGet)

	// Free slots for a given date
	public.HandleFunc("/hangars/{slug}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Customer self-service booking
	public.HandleFunc("/hangars/{slug}/bookings", createPublicBooking.Handle).Methods(http.MethodPost)

	// Booking status by public reference
	public.HandleFunc("/bookings/{ref}", getBookingStatus.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (staff tooling, require X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("/tenants/{tenantId}").Subrouter()
	protected.Use(middleware.Auth)

	// --- Appointments ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Operating calendar ---
	protected.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/blocked-dates", addBlockedDate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blocked-dates/{date}", removeBlockedDate.Handle).Methods(http.MethodDelete)

	// --- Reports ---
	protected.HandleFunc("/reports/revenue", getRevenueReport.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Let in-flight notification sends finish before exiting.
	dispatcher.Drain()

	log.Info("Server stopped gracefully")
}
