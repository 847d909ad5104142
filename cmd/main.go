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

	blockSlotHandler "github.com/SyahmiDin/app-raya-studio/internal/api/handlers/block_slot"
	confirmBookingHandler "github.com/SyahmiDin/app-raya-studio/internal/api/handlers/confirm_booking"
	createCheckoutHandler "github.com/SyahmiDin/app-raya-studio/internal/api/handlers/create_checkout"
	deleteBookingHandler "github.com/SyahmiDin/app-raya-studio/internal/api/handlers/delete_booking"
	getAvailabilityHandler "github.com/SyahmiDin/app-raya-studio/internal/api/handlers/get_availability"
	getBookingsHandler "github.com/SyahmiDin/app-raya-studio/internal/api/handlers/get_bookings"
	getServicesHandler "github.com/SyahmiDin/app-raya-studio/internal/api/handlers/get_services"
	referralsHandler "github.com/SyahmiDin/app-raya-studio/internal/api/handlers/referrals"
	unblockSlotHandler "github.com/SyahmiDin/app-raya-studio/internal/api/handlers/unblock_slot"
	"github.com/SyahmiDin/app-raya-studio/internal/api/middleware"
	"github.com/SyahmiDin/app-raya-studio/internal/config"
	catalogRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/catalog"
	referralRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/referral"
	reservationRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/reservation"
	"github.com/SyahmiDin/app-raya-studio/internal/integrations/stripepay"
	catalogService "github.com/SyahmiDin/app-raya-studio/internal/service/catalog"
	referralsService "github.com/SyahmiDin/app-raya-studio/internal/service/referrals"
	reservationsService "github.com/SyahmiDin/app-raya-studio/internal/service/reservations"
	blockSlotUC "github.com/SyahmiDin/app-raya-studio/internal/usecase/block_slot"
	confirmBookingUC "github.com/SyahmiDin/app-raya-studio/internal/usecase/confirm_booking"
	createCheckoutUC "github.com/SyahmiDin/app-raya-studio/internal/usecase/create_checkout"
	getAvailabilityUC "github.com/SyahmiDin/app-raya-studio/internal/usecase/get_availability"
	"github.com/SyahmiDin/app-raya-studio/migrations"
	"github.com/SyahmiDin/app-raya-studio/pkg/dbmetrics"
	"github.com/SyahmiDin/app-raya-studio/pkg/logger"
	"github.com/SyahmiDin/app-raya-studio/pkg/metrics"
	"github.com/SyahmiDin/app-raya-studio/pkg/simpletxmanager"
	"github.com/SyahmiDin/app-raya-studio/pkg/txmanager"
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

	log.Info("Starting raya-studio booking service...")
	log.Info("Configuration loaded from config.toml")

	sessionWindows, err := cfg.SessionWindows()
	if err != nil {
		log.Fatal("Invalid session windows: %v", err)
	}

	bufferMinutes := cfg.Booking.BufferMinutes
	holdTTL := time.Duration(cfg.Booking.HoldTTLMinutes) * time.Minute

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if err := migrations.Apply(context.Background(), db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем клиент Stripe
	stripeClient := stripepay.NewClient(
		cfg.Stripe.SecretKey,
		cfg.Stripe.Currency,
		cfg.Stripe.SuccessURL,
		cfg.Stripe.CancelURL,
		log,
	)
	log.Info("Stripe client initialized (currency=%s)", cfg.Stripe.Currency)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		catalogRepository     *catalogRepo.Repository
		referralRepository    *referralRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		referralRepository = referralRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		referralRepository = referralRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, holdTTL, log)
	referralsSvc := referralsService.NewService(referralRepository, reservationRepository, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		catalogRepository,
		reservationRepository,
		sessionWindows,
		bufferMinutes,
		log,
	)

	createCheckoutUseCase := createCheckoutUC.NewUseCase(
		reservationRepository,
		catalogRepository,
		referralRepository,
		stripeClient,
		txMgr,
		sessionWindows,
		bufferMinutes,
		holdTTL,
		log,
	)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		reservationRepository,
		stripeClient,
		log,
	)

	blockSlotUseCase := blockSlotUC.NewUseCase(
		reservationRepository,
		txMgr,
		bufferMinutes,
		holdTTL,
		log,
	)

	// Инициализируем handlers
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createCheckout := createCheckoutHandler.NewHandler(createCheckoutUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	blockSlot := blockSlotHandler.NewHandler(blockSlotUseCase, log)
	unblockSlot := unblockSlotHandler.NewHandler(reservationsSvc, log)
	getBookings := getBookingsHandler.NewHandler(reservationsSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(reservationsSvc, log)
	referrals := referralsHandler.NewHandler(referralsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// Сетка слотов на день
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Удержание слота + создание платежной сессии
	api.HandleFunc("/checkout", createCheckout.Handle).Methods(http.MethodPost)

	// Подтверждение оплаченной брони
	api.HandleFunc("/bookings/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))

	// --- Блокировки слотов ---
	admin.HandleFunc("/blocks", blockSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocks/{blockId}", unblockSlot.Handle).Methods(http.MethodDelete)

	// --- Брони ---
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Промокоды ---
	admin.HandleFunc("/referrals", referrals.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/referrals", referrals.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/referrals/report", referrals.HandleReport).Methods(http.MethodGet)
	admin.HandleFunc("/referrals/{code}", referrals.HandleDelete).Methods(http.MethodDelete)

	// Фоновая чистка просроченных холдов
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go func() {
		interval := time.Duration(cfg.Booking.SweepIntervalMinutes) * time.Minute
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info("Hold sweeper started (interval=%s, ttl=%s)", interval, holdTTL)
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if _, err := reservationsSvc.SweepExpiredHolds(sweepCtx); err != nil {
					log.Error("Hold sweeper: %v", err)
				}
			}
		}
	}()

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopSweep()

	// Останавливаем сбор метрик connection pool
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

	log.Info("Server stopped gracefully")
}
