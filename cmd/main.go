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

	catalogHandler "github.com/salonkit/schedule-service/internal/api/handlers/catalog"
	createAppointmentHandler "github.com/salonkit/schedule-service/internal/api/handlers/create_appointment"
	getBookableSlotsHandler "github.com/salonkit/schedule-service/internal/api/handlers/get_bookable_slots"
	getWeekScheduleHandler "github.com/salonkit/schedule-service/internal/api/handlers/get_week_schedule"
	plannerHandler "github.com/salonkit/schedule-service/internal/api/handlers/planner"
	"github.com/salonkit/schedule-service/internal/api/middleware"
	"github.com/salonkit/schedule-service/internal/config"
	salonServiceClient "github.com/salonkit/schedule-service/internal/integrations/salonservice"
	plannerService "github.com/salonkit/schedule-service/internal/service/planner"
	createAppointmentUC "github.com/salonkit/schedule-service/internal/usecase/create_appointment"
	getBookableSlotsUC "github.com/salonkit/schedule-service/internal/usecase/get_bookable_slots"
	getWeekScheduleUC "github.com/salonkit/schedule-service/internal/usecase/get_week_schedule"
	"github.com/salonkit/schedule-service/pkg/logger"
	"github.com/salonkit/schedule-service/pkg/metrics"
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

	log.Info("Starting schedule-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем клиент бэкенда салона
	salonClient := salonServiceClient.NewClient(
		cfg.SalonService.URL,
		time.Duration(cfg.SalonService.Timeout)*time.Second,
		log,
	)
	if cfg.Metrics.Enabled {
		salonClient = salonClient.WithMetrics(metricsCollector)
	}
	log.Info("Integration client initialized (SalonService=%s timeout=%ds)",
		cfg.SalonService.URL, cfg.SalonService.Timeout)

	// Инициализируем сервис планировщика доступности
	plannerSvc := plannerService.NewService(salonClient, log)

	// Инициализируем use cases
	getWeekScheduleUseCase := getWeekScheduleUC.NewUseCase(salonClient, log)
	getBookableSlotsUseCase := getBookableSlotsUC.NewUseCase(getWeekScheduleUseCase, salonClient, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(getWeekScheduleUseCase, salonClient, log)

	// Инициализируем handlers
	getWeekSchedule := getWeekScheduleHandler.NewHandler(getWeekScheduleUseCase, log)
	getBookableSlots := getBookableSlotsHandler.NewHandler(getBookableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	planner := plannerHandler.NewHandler(plannerSvc, log)
	catalog := catalogHandler.NewHandler(salonClient, log)

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

	// Справочники салона
	api.HandleFunc("/services", catalog.HandleServices).Methods(http.MethodGet)
	api.HandleFunc("/specialists", catalog.HandleSpecialists).Methods(http.MethodGet)

	// Недельное расписание сотрудника
	api.HandleFunc("/employees/{employeeId}/schedule",
		getWeekSchedule.Handle).Methods(http.MethodGet)

	// Доступные для записи слоты
	api.HandleFunc("/employees/{employeeId}/bookable-slots",
		getBookableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи клиентов ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// --- Планировщик доступности (для сотрудников) ---
	plannerPrefix := "/employees/{employeeId}/planner"
	protected.HandleFunc(plannerPrefix+"/week", planner.HandleLoadWeek).Methods(http.MethodGet)
	protected.HandleFunc(plannerPrefix+"/state", planner.HandleState).Methods(http.MethodGet)
	protected.HandleFunc(plannerPrefix+"/mode", planner.HandleSetMode).Methods(http.MethodPut)
	protected.HandleFunc(plannerPrefix+"/draft", planner.HandleDraft).Methods(http.MethodGet)
	protected.HandleFunc(plannerPrefix+"/draft", planner.HandleCancel).Methods(http.MethodDelete)
	protected.HandleFunc(plannerPrefix+"/draft/add", planner.HandlePlanAdd).Methods(http.MethodPost)
	protected.HandleFunc(plannerPrefix+"/draft/resize", planner.HandlePlanResize).Methods(http.MethodPost)
	protected.HandleFunc(plannerPrefix+"/draft/delete", planner.HandlePlanDelete).Methods(http.MethodPost)
	protected.HandleFunc(plannerPrefix+"/draft/confirm", planner.HandleConfirm).Methods(http.MethodPost)

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
