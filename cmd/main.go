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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/create_booking"
	generateSlotsHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/generate_slots"
	getAvailabilityHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_booking"
	getTeamAvailabilityHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_team_availability"
	getTeamRangeHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_team_range_availability"
	getWorkingHoursHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_working_hours"
	healthHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/list_bookings"
	listServiceDurationsHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/list_service_durations"
	moveBookingHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/move_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/update_booking_status"
	updateServiceDurationHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/update_service_duration"
	updateWorkingHoursHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/update_working_hours"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBooking/internal/config"
	whCache "github.com/m04kA/SMC-ClinicBooking/internal/infra/cache/workinghours"
	bookingRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/booking"
	serviceDurationRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/serviceduration"
	slotCacheRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/slotcache"
	teamMemberRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/teammember"
	workingHoursRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-ClinicBooking/internal/integrations/events"
	"github.com/m04kA/SMC-ClinicBooking/internal/integrations/mailer"
	"github.com/m04kA/SMC-ClinicBooking/internal/integrations/payments"
	"github.com/m04kA/SMC-ClinicBooking/internal/jobs/slotcache"
	availabilityService "github.com/m04kA/SMC-ClinicBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ClinicBooking/internal/service/bookings"
	notifyService "github.com/m04kA/SMC-ClinicBooking/internal/service/notify"
	scheduleService "github.com/m04kA/SMC-ClinicBooking/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/create_booking"
	generateSlotsUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/generate_slots"
	getAvailabilityUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
	moveBookingUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/move_booking"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
	"github.com/m04kA/SMC-ClinicBooking/pkg/metrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/txmanager"
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

	log.Info("Starting SMC-ClinicBooking...")
	log.Info("Configuration loaded from config.toml")

	// Метрики (если включены), nil-коллектор безопасен для сервисов
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	durationRepository := serviceDurationRepo.NewRepository(wrappedDB)
	teamMemberRepository := teamMemberRepo.NewRepository(wrappedDB)
	slotCacheRepository := slotCacheRepo.NewRepository(wrappedDB)
	workingHoursRepository := workingHoursRepo.NewRepository(wrappedDB)

	// Рабочие часы: через redis, если он включён
	var workingHours interface {
		availabilityService.WorkingHoursStore
		scheduleService.WorkingHoursStore
	} = workingHoursRepository

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis ping failed, cache will fall back to database: %v", err)
		}
		cancelPing()

		workingHours = whCache.New(
			workingHoursRepository,
			redisClient,
			time.Duration(cfg.Redis.WorkingHoursTTLSecs)*time.Second,
			log,
		)
		log.Info("Working hours cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.WorkingHoursTTLSecs)
	}

	// Интеграции; выключенные остаются nil-интерфейсами
	var publisher notifyService.EventPublisher = events.Nop{}
	var kafkaPublisher *events.Publisher
	if cfg.Kafka.Enabled {
		kafkaPublisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		publisher = kafkaPublisher
		log.Info("Booking events publisher enabled (topic=%s)", cfg.Kafka.Topic)
	}

	var mail notifyService.MailSender
	if cfg.Mail.Enabled {
		mail = mailer.New(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From)
		log.Info("Email notifications enabled (smtp=%s:%d)", cfg.Mail.Host, cfg.Mail.Port)
	}

	var paymentClient createBookingUC.PaymentClient
	if cfg.Stripe.Enabled {
		paymentClient = payments.NewClient(cfg.Stripe.SecretKey, log)
		log.Info("Stripe payment verification enabled")
	}

	// Сервисы
	notifier := notifyService.NewService(publisher, mail, log)
	availabilitySvc := availabilityService.NewService(
		workingHours,
		bookingRepository,
		metricsCollector,
		log,
		cfg.Availability.MaxRangeDays,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, notifier, txMgr, log)
	scheduleSvc := scheduleService.NewService(workingHours, durationRepository, txMgr, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		durationRepository,
		teamMemberRepository,
		paymentClient,
		notifier,
		metricsCollector,
		txMgr,
		log,
	)
	moveBookingUseCase := moveBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		durationRepository,
		notifier,
		metricsCollector,
		txMgr,
		log,
		cfg.Booking.MoveAutoSubstitute,
		cfg.Availability.DayIntervalMinutes,
		cfg.Availability.TeamIntervalMinutes,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		availabilitySvc,
		durationRepository,
		teamMemberRepository,
		log,
		cfg.Availability.DayIntervalMinutes,
		cfg.Availability.TeamIntervalMinutes,
	)
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		availabilitySvc,
		slotCacheRepository,
		txMgr,
		log,
		cfg.Availability.DayIntervalMinutes,
		cfg.Availability.TeamIntervalMinutes,
	)

	// Фоновый пересчёт кеша слотов
	var slotJob *slotcache.Job
	if cfg.SlotCache.Enabled {
		slotJob, err = slotcache.New(
			cfg.SlotCache.Schedule,
			generateSlotsUseCase,
			log,
			cfg.SlotCache.DaysAhead,
			cfg.SlotCache.ServiceDurationMinutes,
		)
		if err != nil {
			log.Fatal("Failed to create slot cache job: %v", err)
		}
		slotJob.Start()
	}

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getTeamAvailability := getTeamAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getTeamRange := getTeamRangeHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	moveBooking := moveBookingHandler.NewHandler(moveBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(scheduleSvc, log)
	listServiceDurations := listServiceDurationsHandler.NewHandler(scheduleSvc, log)
	updateServiceDuration := updateServiceDurationHandler.NewHandler(scheduleSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/team", getTeamAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/team/range", getTeamRange.Handle).Methods(http.MethodGet)

	// Создание записи после оплаты
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-User-ID + X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth)
	admin.Use(middleware.RequireAdmin)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id:[0-9]+}/move", moveBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Настройки клиники ---
	admin.HandleFunc("/admin/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/admin/working-hours/{day}", updateWorkingHours.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/admin/service-durations", listServiceDurations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/admin/service-durations/{name}", updateServiceDuration.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/admin/slots/generate", generateSlots.Handle).Methods(http.MethodPost)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if slotJob != nil {
		slotJob.Stop()
	}
	// Дожидаемся фоновых оповещений до закрытия kafka
	notifier.Wait()
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			log.Error("Failed to close events publisher: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
