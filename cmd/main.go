package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/create_booking"
	createLessonHandler "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/create_lesson"
	createTypeHandler "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/create_subscription_type"
	enrollHandler "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/enroll"
	getAvailableSlotsHandler "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/get_client_bookings"
	getRemainingVisitsHandler "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/get_remaining_visits"
	purchaseHandler "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/purchase_subscription"
	transitionBookingHandler "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/transition_booking"
	transitionSubscriptionHandler "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/transition_subscription"
	unenrollHandler "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/unenroll"
	updateTypeHandler "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/update_subscription_type"
	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
	"github.com/m04kA/SMC-DanceStudio/internal/config"
	userServiceClient "github.com/m04kA/SMC-DanceStudio/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-DanceStudio/internal/service/bookings"
	"github.com/m04kA/SMC-DanceStudio/internal/service/conflicts"
	subscriptionsService "github.com/m04kA/SMC-DanceStudio/internal/service/subscriptions"
	typesService "github.com/m04kA/SMC-DanceStudio/internal/service/subscriptiontypes"
	createBookingUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/create_booking"
	createLessonUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/create_lesson"
	enrollUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/enroll"
	getAvailableSlotsUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/get_available_slots"
	purchaseUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/purchase_subscription"
	unenrollUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/unenroll"
	"github.com/m04kA/SMC-DanceStudio/internal/worker/statusrefresh"
	"github.com/m04kA/SMC-DanceStudio/pkg/logger"
	"github.com/m04kA/SMC-DanceStudio/pkg/metrics"
)

// outcomeRecorder общий для use cases интерфейс метрик исходов
type outcomeRecorder interface {
	RecordOutcome(operation, outcome string)
}

type staffChecker interface {
	IsStaff(userID int64) bool
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
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

	log.Info("Starting SMC-DanceStudio...")
	log.Info("Configuration loaded from %s (storage=%s)", configPath, cfg.Storage.Backend)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		outcomes         outcomeRecorder = metrics.Nop{}
	)
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		outcomes = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := openBackend(startCtx, cfg, metricsCollector, log)
	if err != nil {
		cancelStart()
		log.Fatal("Failed to open storage: %v", err)
	}
	defer db.close()

	if err := seedHalls(startCtx, db.store, cfg.Storage.Halls, log); err != nil {
		cancelStart()
		log.Fatal("Failed to seed halls: %v", err)
	}
	cancelStart()

	// Права сотрудников: роль из UserService, статический список как резерв
	var staff staffChecker = bookingsService.NewStaffList(cfg.Auth.StaffIDs)
	if cfg.UserService.URL != "" {
		userClient := userServiceClient.NewClient(cfg.UserService.URL, cfg.UserService.TimeoutDuration(), log)
		staff = userServiceClient.NewStaffResolver(userClient, staff, cfg.UserService.TimeoutDuration(), log)
		log.Info("Integration clients initialized (UserService=%s timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)
	}
	detector := conflicts.NewDetector(db.store)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(db.store, staff, log)
	subscriptionSvc := subscriptionsService.NewService(db.store, log)
	typeSvc := typesService.NewService(db.store, db.txManager, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(db.store, detector, db.txManager, outcomes, log)
	createLessonUseCase := createLessonUC.NewUseCase(db.store, detector, db.txManager, outcomes, log)
	enrollUseCase := enrollUC.NewUseCase(db.store, db.txManager, cfg.Enrollment.MaxAttempts, outcomes, log)
	unenrollUseCase := unenrollUC.NewUseCase(db.store, db.txManager, cfg.Enrollment.MaxAttempts, outcomes, log)
	purchaseUseCase := purchaseUC.NewUseCase(db.store, db.txManager, outcomes, log)
	availableSlotsUseCase := getAvailableSlotsUC.NewUseCase(db.store, getAvailableSlotsUC.OpeningHours{
		Open:  cfg.Studio.OpenHour,
		Close: cfg.Studio.CloseHour,
	}, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(bookingSvc, log)
	availableSlots := getAvailableSlotsHandler.NewHandler(availableSlotsUseCase, log)
	createLesson := createLessonHandler.NewHandler(createLessonUseCase, staff, log)
	enroll := enrollHandler.NewHandler(enrollUseCase, log)
	unenroll := unenrollHandler.NewHandler(unenrollUseCase, log)
	purchase := purchaseHandler.NewHandler(purchaseUseCase, log)
	transitionSubscription := transitionSubscriptionHandler.NewHandler(subscriptionSvc, staff, log)
	getRemainingVisits := getRemainingVisitsHandler.NewHandler(subscriptionSvc, staff, log)
	createType := createTypeHandler.NewHandler(typeSvc, staff, log)
	updateType := updateTypeHandler.NewHandler(typeSvc, staff, log)

	// Фоновое обновление статусов
	var scheduler *statusrefresh.Scheduler
	if cfg.Scheduler.Enabled {
		refresher := statusrefresh.NewRefresher(db.store, outcomes, log)
		scheduler = statusrefresh.NewScheduler(refresher, cfg.Scheduler.Spec, cfg.Scheduler.TimeoutDuration(), log)
		if err := scheduler.Start(); err != nil {
			log.Fatal("Failed to start status refresh scheduler: %v", err)
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все маршруты API требуют X-User-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Бронирования залов ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", getClientBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", transitionBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/halls/{hallId}/available-slots", availableSlots.Handle).Methods(http.MethodGet)

	// --- Занятия и запись ---
	api.HandleFunc("/lessons", createLesson.Handle).Methods(http.MethodPost)
	api.HandleFunc("/lessons/{lessonId}/enrollments", enroll.Handle).Methods(http.MethodPost)
	api.HandleFunc("/lessons/{lessonId}/enrollments", unenroll.Handle).Methods(http.MethodDelete)

	// --- Абонементы ---
	api.HandleFunc("/subscription-types", createType.Handle).Methods(http.MethodPost)
	api.HandleFunc("/subscription-types/{typeId}", updateType.Handle).Methods(http.MethodPut)
	api.HandleFunc("/subscriptions", purchase.Handle).Methods(http.MethodPost)
	api.HandleFunc("/subscriptions/{subscriptionId}/status", transitionSubscription.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/clients/{clientId}/remaining-visits", getRemainingVisits.Handle).Methods(http.MethodGet)

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

	// Дожидаемся текущего прохода планировщика
	if scheduler != nil {
		select {
		case <-scheduler.Stop().Done():
			log.Info("Status refresh scheduler stopped")
		case <-shutdownCtx.Done():
			log.Warn("Status refresh scheduler did not stop in time")
		}
	}

	log.Info("Server stopped gracefully")
}
