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

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberBooking/internal/api"
	adminLoginHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/admin_login"
	adminLogoutHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/admin_logout"
	blockDayHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/block_day"
	cancelAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_calendar"
	getClientAppointmentsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_client_appointments"
	getScheduleHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_schedule"
	getStatsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_stats"
	listAppointmentsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_appointments"
	listBarbersHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_barbers"
	listBlockedDaysHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_blocked_days"
	replaceAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/replace_appointment"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/reschedule_appointment"
	unblockDayHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/unblock_day"
	updateScheduleHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/config"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/session"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	barberRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/barber"
	blockedDayRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/blockedday"
	scheduleRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/schedule"
	adminService "github.com/m04kA/SMC-BarberBooking/internal/service/admin"
	appointmentsService "github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	blockedDaysService "github.com/m04kA/SMC-BarberBooking/internal/service/blockeddays"
	scheduleService "github.com/m04kA/SMC-BarberBooking/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
	replaceAppointmentUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/replace_appointment"
	rescheduleAppointmentUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-BarberBooking/migrations"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-BarberBooking...")

	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Invalid schedule timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// Проверяем соединение
	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		if err := migrations.Up(startupCtx, db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, err := migrations.Version(startupCtx, db)
		if err != nil {
			log.Warn("Failed to read schema version: %v", err)
		}
		log.Info("Database schema is up to date (version=%d)", version)
	}

	// Хранилище сессий администратора: Redis или память процесса
	var sessions adminService.SessionStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		redisStore := session.NewRedisStore(rdb, cfg.Redis.KeyPrefix)
		if err := redisStore.Ping(startupCtx); err != nil {
			log.Fatal("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		sessions = redisStore
		log.Info("Admin sessions stored in redis (addr=%s)", cfg.Redis.Addr)
	} else {
		sessions = session.NewMemoryStore()
		log.Warn("Redis is not configured, admin sessions are kept in memory")
	}

	// Обёртка БД: с nil-метриками работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	blockedDayRepository := blockedDayRepo.NewRepository(wrappedDB)
	barberRepository := barberRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(scheduleRepository, cfg.Schedule.Defaults(), location, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, scheduleSvc, txMgr, metricsCollector, log)
	blockedDaysSvc := blockedDaysService.NewService(blockedDayRepository, appointmentRepository, scheduleSvc, txMgr, log)
	adminSvc := adminService.NewService(cfg.Admin.PasswordHash, cfg.Admin.SessionTTL(), sessions, log)

	if cfg.Admin.PasswordHash == "" {
		log.Warn("ADMIN_PASSWORD_HASH is not set, admin login is disabled")
	}

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		blockedDayRepository,
		barberRepository,
		scheduleSvc,
		txMgr,
		metricsCollector,
		log,
	)
	replaceAppointmentUseCase := replaceAppointmentUC.NewUseCase(
		appointmentRepository,
		blockedDayRepository,
		barberRepository,
		scheduleSvc,
		txMgr,
		metricsCollector,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		blockedDayRepository,
		scheduleSvc,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		blockedDayRepository,
		scheduleSvc,
		log,
	)

	// Инициализируем handlers
	handlers := api.Handlers{
		ListAppointments:      listAppointmentsHandler.NewHandler(appointmentsSvc, log).Handle,
		GetAppointment:        getAppointmentHandler.NewHandler(appointmentsSvc, log).Handle,
		CreateAppointment:     createAppointmentHandler.NewHandler(createAppointmentUseCase, log).Handle,
		ReplaceAppointment:    replaceAppointmentHandler.NewHandler(replaceAppointmentUseCase, log).Handle,
		RescheduleAppointment: rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log).Handle,
		CancelAppointment:     cancelAppointmentHandler.NewHandler(appointmentsSvc, log).Handle,
		DeleteAppointment:     deleteAppointmentHandler.NewHandler(appointmentsSvc, log).Handle,
		ClientAppointments:    getClientAppointmentsHandler.NewHandler(appointmentsSvc, log).Handle,
		AvailableSlots:        getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log).Handle,

		ListBlockedDays: listBlockedDaysHandler.NewHandler(blockedDaysSvc, log).Handle,
		Calendar:        getCalendarHandler.NewHandler(blockedDaysSvc, log).Handle,
		BlockDay:        blockDayHandler.NewHandler(blockedDaysSvc, log).Handle,
		UnblockDay:      unblockDayHandler.NewHandler(blockedDaysSvc, log).Handle,

		GetSchedule:    getScheduleHandler.NewHandler(scheduleSvc, log).Handle,
		UpdateSchedule: updateScheduleHandler.NewHandler(scheduleSvc, log).Handle,
		ListBarbers:    listBarbersHandler.NewHandler(barberRepository, log).Handle,

		AdminLogin:  adminLoginHandler.NewHandler(adminSvc, log).Handle,
		AdminLogout: adminLogoutHandler.NewHandler(adminSvc, log).Handle,
		Stats:       getStatsHandler.NewHandler(appointmentsSvc, log).Handle,
	}

	// Настраиваем роутер
	loginLimiter := middleware.NewRateLimiter(cfg.Admin.LoginRatePerMinute, cfg.Admin.LoginBurst)
	router := api.NewRouter(handlers, api.Options{
		Metrics:     metricsCollector,
		MetricsPath: cfg.Metrics.Path,
		ServiceName: cfg.Metrics.ServiceName,
		AdminAuth:   middleware.AdminAuth(adminSvc, log),
		LoginLimit:  loginLimiter.Middleware(log),
		CORS: middleware.CORSPolicy{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:         time.Duration(cfg.CORS.MaxAge) * time.Second,
		},
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
