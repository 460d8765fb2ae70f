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

	cancelBookingHandler "github.com/magiclook/ML-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/magiclook/ML-BookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/magiclook/ML-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/magiclook/ML-BookingService/internal/api/handlers/get_booking"
	getPriceHandler "github.com/magiclook/ML-BookingService/internal/api/handlers/get_price"
	getUserBookingsHandler "github.com/magiclook/ML-BookingService/internal/api/handlers/get_user_bookings"
	markReturnedHandler "github.com/magiclook/ML-BookingService/internal/api/handlers/mark_returned"
	setUnitStateHandler "github.com/magiclook/ML-BookingService/internal/api/handlers/set_unit_state"
	"github.com/magiclook/ML-BookingService/internal/api/middleware"
	"github.com/magiclook/ML-BookingService/internal/config"
	"github.com/magiclook/ML-BookingService/internal/domain"
	bookingRepo "github.com/magiclook/ML-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/magiclook/ML-BookingService/internal/infra/storage/catalog"
	notifyServiceClient "github.com/magiclook/ML-BookingService/internal/integrations/notifyservice"
	bookingsService "github.com/magiclook/ML-BookingService/internal/service/bookings"
	catalogService "github.com/magiclook/ML-BookingService/internal/service/catalog"
	checkAvailabilityUC "github.com/magiclook/ML-BookingService/internal/usecase/check_availability"
	createBookingUC "github.com/magiclook/ML-BookingService/internal/usecase/create_booking"
	"github.com/magiclook/ML-BookingService/pkg/dbmetrics"
	"github.com/magiclook/ML-BookingService/pkg/logger"
	"github.com/magiclook/ML-BookingService/pkg/metrics"
	"github.com/magiclook/ML-BookingService/pkg/simpletxmanager"
	"github.com/magiclook/ML-BookingService/pkg/txmanager"
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

	log.Info("Starting ML-BookingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем клиент сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotifyService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Бизнес-политики из конфигурации
	schedulePolicy := domain.SchedulePolicy{
		PickupLeadDays:  cfg.Policy.PickupLeadDays,
		ReturnSlackDays: cfg.Policy.ReturnSlackDays,
		LaundryDays:     cfg.Policy.LaundryDays,
	}
	refundTiers := make([]domain.RefundTier, 0, len(cfg.Policy.RefundTiers))
	for _, tier := range cfg.Policy.RefundTiers {
		refundTiers = append(refundTiers, domain.RefundTier{
			MinDaysBefore: tier.MinDaysBefore,
			Percent:       tier.Percent,
		})
	}
	refundPolicy := domain.RefundPolicy{Tiers: refundTiers}
	log.Info("Booking policy loaded (pickup_lead=%dd, return_slack=%dd, laundry=%dd, refund_tiers=%d)",
		schedulePolicy.PickupLeadDays, schedulePolicy.ReturnSlackDays, schedulePolicy.LaundryDays, len(refundTiers))

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		catalogRepository *catalogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogRepository,
		notifyClient,
		refundPolicy,
		log,
	)
	catalogSvc := catalogService.NewService(
		catalogRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		notifyClient,
		txMgr,
		schedulePolicy,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		schedulePolicy,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getPrice := getPriceHandler.NewHandler(catalogSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	markReturned := markReturnedHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	setUnitState := setUnitStateHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности товара на интервал дат
	api.HandleFunc("/items/{itemId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Расчет стоимости аренды
	api.HandleFunc("/items/{itemId}/price", getPrice.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования с атомарным резервированием экземпляра
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования с расчетом возврата денег
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Операции персонала ---
	// Отметка фактического возврата вещи
	protected.HandleFunc("/bookings/{bookingId}/return", markReturned.Handle).Methods(http.MethodPatch)

	// Перевод экземпляра в обслуживание и обратно
	protected.HandleFunc("/units/{unitId}/state", setUnitState.Handle).Methods(http.MethodPatch)

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
