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

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/delete_booking"
	getAdminBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_admin_bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_calendar"
	getCatalogHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_catalog"
	getCustomerStatsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_customer_stats"
	getDashboardStatsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_dashboard_stats"
	getScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_schedule"
	getUserBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_user_bookings"
	updateBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_booking_status"
	updateScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogCache "github.com/m04kA/SMC-SalonBooking/internal/infra/cache/catalog"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	rolesRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/roles"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	calendarService "github.com/m04kA/SMC-SalonBooking/internal/service/calendar"
	scheduleService "github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	statsService "github.com/m04kA/SMC-SalonBooking/internal/service/stats"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	updateBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/tracing"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// catalogSource каталог из БД, с кэшем Redis или без него
type catalogSource interface {
	GetServices(ctx context.Context, activeOnly bool) ([]*domain.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	GetProfessionals(ctx context.Context, activeOnly bool) ([]*domain.Professional, error)
	GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error)
	GetCustomerProfiles(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomerProfile, error)
	CountCustomers(ctx context.Context) (int, error)
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("SALON_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from %s (timezone=%s)", configPath, cfg.Salon.Timezone)

	loc := cfg.Location()

	// Трейсинг: без провайдера спаны use cases ничего не пишут
	shutdownTracing := tracing.ShutdownFunc(func(context.Context) error { return nil })
	if cfg.Tracing.Enabled {
		shutdownTracing, err = tracing.Init(context.Background(), tracing.Config{
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
			ServiceName: cfg.Tracing.ServiceName,
			Environment: cfg.Tracing.Environment,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			log.Fatal("Failed to initialize tracing: %v", err)
		}
		log.Info("Tracing enabled (endpoint=%s, ratio=%.2f)", cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	}

	// Метрики: nil коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	var queryObserver dbmetrics.QueryObserver
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		queryObserver = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.Wrap(db, queryObserver)
	wrappedDB.StartPoolCollector(15*time.Second, stopMetricsCh)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	rolesRepository := rolesRepo.NewRepository(wrappedDB, cfg.Salon.StaffRole)
	txMgr := txmanager.New(wrappedDB, log)

	// Кэш каталога (если настроен Redis)
	var catalog catalogSource = catalogRepository
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is unavailable, catalog cache will fall back to database: %v", err)
		}
		cache := catalogCache.New(catalogRepository, redisClient, cfg.CacheTTL(), log)
		// каталог мог измениться между запусками (миграции, сиды)
		if err := cache.Invalidate(context.Background()); err != nil {
			log.Warn("Failed to reset catalog cache: %v", err)
		}
		catalog = cache
		log.Info("Catalog cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.CacheTTL())
	}

	// События бронирований
	var publisher events.JSONPublisher
	if cfg.Events.Enabled {
		p, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to event broker: %v", err)
		}
		defer p.Close()
		publisher = p
		log.Info("Booking events enabled (exchange=%s)", cfg.Events.Exchange)
	}
	notifier := events.NewNotifier(publisher, cfg.EventsTimeout(), log)

	// Сетка календаря
	gridStart, err := types.NewTimeStringFromString(cfg.Calendar.StartTime)
	if err != nil {
		log.Fatal("Invalid calendar.start_time: %v", err)
	}
	gridEnd, err := types.NewTimeStringFromString(cfg.Calendar.EndTime)
	if err != nil {
		log.Fatal("Invalid calendar.end_time: %v", err)
	}
	grid, err := scheduling.NewGrid(gridStart, gridEnd, cfg.Calendar.CellMinutes)
	if err != nil {
		log.Fatal("Invalid calendar grid: %v", err)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalog,
		rolesRepository,
		txMgr,
		notifier,
		metricsCollector,
		log,
	)
	scheduleSvc := scheduleService.NewService(scheduleRepository, rolesRepository, txMgr, log)
	statsSvc := statsService.NewService(bookingRepository, catalog, rolesRepository, txMgr, loc, log)
	calendarSvc := calendarService.NewService(bookingRepository, catalog, rolesRepository, grid, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalog,
		txMgr,
		notifier,
		metricsCollector,
		loc,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalog,
		rolesRepository,
		txMgr,
		notifier,
		metricsCollector,
		loc,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalog,
		loc,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCatalog := getCatalogHandler.NewHandler(catalog, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)

	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, loc, log)
	getDashboardStats := getDashboardStatsHandler.NewHandler(statsSvc, log)
	getCustomerStats := getCustomerStatsHandler.NewHandler(statsSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/services", getCatalog.HandleServices).Methods(http.MethodGet)
	api.HandleFunc("/professionals", getCatalog.HandleProfessionals).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{professionalId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimitPerMinute, cfg.Server.RateLimitBurst)
		protected.Use(limiter.Middleware)
	}

	// --- Бронирования клиента ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Админка (роль проверяется в сервисах) ---
	protected.HandleFunc("/admin/bookings", getAdminBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/admin/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/admin/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/admin/calendar", getCalendar.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/stats", getDashboardStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/customers/stats", getCustomerStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
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
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
