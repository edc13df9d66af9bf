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

	cancelBookingHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/cancel_booking"
	cancelReservationHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/cancel_reservation"
	completeReservationHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/complete_reservation"
	confirmReservationHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/confirm_reservation"
	createBookingHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/create_booking"
	createReservationHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/get_customer_bookings"
	getDailyLoadHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/get_daily_load"
	getReservationHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/list_reservations"
	markNoShowHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/mark_no_show"
	updateBookingStatusHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/update_booking_status"
	updatePaymentStatusHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/update_payment_status"
	updateReservationHandler "github.com/salonhq/SLN-ReservationService/internal/api/handlers/update_reservation"
	"github.com/salonhq/SLN-ReservationService/internal/api/middleware"
	"github.com/salonhq/SLN-ReservationService/internal/config"
	"github.com/salonhq/SLN-ReservationService/internal/events"
	bookingRepo "github.com/salonhq/SLN-ReservationService/internal/infra/storage/booking"
	reservationRepo "github.com/salonhq/SLN-ReservationService/internal/infra/storage/reservation"
	catalogServiceClient "github.com/salonhq/SLN-ReservationService/internal/integrations/catalogservice"
	bookingsService "github.com/salonhq/SLN-ReservationService/internal/service/bookings"
	reservationsService "github.com/salonhq/SLN-ReservationService/internal/service/reservations"
	cancelReservationUC "github.com/salonhq/SLN-ReservationService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/salonhq/SLN-ReservationService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/salonhq/SLN-ReservationService/internal/usecase/get_available_slots"
	updateReservationUC "github.com/salonhq/SLN-ReservationService/internal/usecase/update_reservation"
	"github.com/salonhq/SLN-ReservationService/pkg/logger"
	"github.com/salonhq/SLN-ReservationService/pkg/metrics"
	"github.com/salonhq/SLN-ReservationService/pkg/txmanager"
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

	log.Info("Starting SLN-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем клиент каталога (услуги, мастера с расписаниями)
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("CatalogService client initialized (url=%s, timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем издатель событий (amqp или noop по конфигурации)
	var publisher events.Publisher
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Queue)
		if err != nil {
			log.Fatal("Failed to connect to event broker: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Event publisher connected (queue=%s)", cfg.Events.Queue)
	} else {
		publisher = events.NewNoopPublisher()
		log.Info("Event publishing disabled, using noop publisher")
	}
	defer publisher.Close()

	// Инициализируем репозитории и менеджер транзакций
	reservationRepository := reservationRepo.NewRepository(db)
	bookingRepository := bookingRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		catalogClient,
		publisher,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		reservationRepository,
		txMgr,
		publisher,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		catalogClient,
		txMgr,
		publisher,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		catalogClient,
		cfg.Reservations.AllowPastSlotQueries,
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		publisher,
		log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationSvc, log)
	completeReservation := completeReservationHandler.NewHandler(reservationSvc, log)
	markNoShow := markNoShowHandler.NewHandler(reservationSvc, log)
	getDailyLoad := getDailyLoadHandler.NewHandler(reservationSvc, log)
	createBooking := createBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты мастера на день
	api.HandleFunc("/salons/{salonId}/staff/{staffId}/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Загрузка салона на дату
	api.HandleFunc("/salons/{salonId}/load", getDailyLoad.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment", updatePaymentStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/salons/{salonId}/customers/{customerId}/bookings",
		getCustomerBookings.Handle).Methods(http.MethodGet)

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
