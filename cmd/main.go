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
	"github.com/robfig/cron/v3"

	advanceQueueHandler "github.com/avdeevsv/GBS-QueueService/internal/api/handlers/advance_queue"
	getAppointmentsHandler "github.com/avdeevsv/GBS-QueueService/internal/api/handlers/get_appointments"
	getBusinessHoursHandler "github.com/avdeevsv/GBS-QueueService/internal/api/handlers/get_business_hours"
	getQueueHandler "github.com/avdeevsv/GBS-QueueService/internal/api/handlers/get_queue"
	getSettingsHandler "github.com/avdeevsv/GBS-QueueService/internal/api/handlers/get_settings"
	getWeekGridHandler "github.com/avdeevsv/GBS-QueueService/internal/api/handlers/get_week_grid"
	manageCatalogHandler "github.com/avdeevsv/GBS-QueueService/internal/api/handlers/manage_catalog"
	manageSessionsHandler "github.com/avdeevsv/GBS-QueueService/internal/api/handlers/manage_sessions"
	scheduleAppointmentHandler "github.com/avdeevsv/GBS-QueueService/internal/api/handlers/schedule_appointment"
	updateAvailabilityHandler "github.com/avdeevsv/GBS-QueueService/internal/api/handlers/update_availability"
	updateQueueStatusHandler "github.com/avdeevsv/GBS-QueueService/internal/api/handlers/update_queue_status"
	updateSettingsHandler "github.com/avdeevsv/GBS-QueueService/internal/api/handlers/update_settings"
	"github.com/avdeevsv/GBS-QueueService/internal/api/middleware"
	"github.com/avdeevsv/GBS-QueueService/internal/config"
	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	catalogRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/catalog"
	orderRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/order"
	queueRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/queue"
	sessionRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/session"
	settingsRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/settings"
	notifierClient "github.com/avdeevsv/GBS-QueueService/internal/integrations/notifier"
	catalogService "github.com/avdeevsv/GBS-QueueService/internal/service/catalog"
	queueService "github.com/avdeevsv/GBS-QueueService/internal/service/queue"
	settingsService "github.com/avdeevsv/GBS-QueueService/internal/service/settings"
	advanceQueueUC "github.com/avdeevsv/GBS-QueueService/internal/usecase/advance_queue"
	getWeekGridUC "github.com/avdeevsv/GBS-QueueService/internal/usecase/get_week_grid"
	scheduleAppointmentUC "github.com/avdeevsv/GBS-QueueService/internal/usecase/schedule_appointment"
	updateAvailabilityUC "github.com/avdeevsv/GBS-QueueService/internal/usecase/update_availability"
	updateQueueStatusUC "github.com/avdeevsv/GBS-QueueService/internal/usecase/update_queue_status"
	"github.com/avdeevsv/GBS-QueueService/pkg/dbmetrics"
	"github.com/avdeevsv/GBS-QueueService/pkg/logger"
	"github.com/avdeevsv/GBS-QueueService/pkg/metrics"
	"github.com/avdeevsv/GBS-QueueService/pkg/simpletxmanager"
	"github.com/avdeevsv/GBS-QueueService/pkg/txmanager"
)

// noopNotifier используется, когда сервис уведомлений выключен в конфиге
type noopNotifier struct{}

func (noopNotifier) NotifyBestEffort(_ context.Context, _ domain.QueueEvent) {}

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

	log.Info("Starting GBS-QueueService...")
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

	// Инициализируем клиента уведомлений
	type notifier interface {
		NotifyBestEffort(ctx context.Context, event domain.QueueEvent)
	}
	var notify notifier = noopNotifier{}
	if cfg.Notifier.Enabled {
		notify = notifierClient.NewClient(
			cfg.Notifier.URL,
			time.Duration(cfg.Notifier.Timeout)*time.Second,
			log,
		)
		log.Info("Notifier client initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	} else {
		log.Info("Notifier disabled, events will be dropped")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		queueRepository    *queueRepo.Repository
		sessionRepository  *sessionRepo.Repository
		orderRepository    *orderRepo.Repository
		settingsRepository *settingsRepo.Repository
		catalogRepository  *catalogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		queueRepository = queueRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		orderRepository = orderRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		queueRepository = queueRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		orderRepository = orderRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	queueSvc := queueService.NewService(queueRepository, sessionRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, txMgr, log)

	// Инициализируем use cases
	getWeekGridUseCase := getWeekGridUC.NewUseCase(
		queueRepository,
		settingsRepository,
		catalogRepository,
		log,
	)
	scheduleAppointmentUseCase := scheduleAppointmentUC.NewUseCase(
		queueRepository,
		orderRepository,
		settingsRepository,
		catalogRepository,
		notify,
		txMgr,
		log,
	)
	updateQueueStatusUseCase := updateQueueStatusUC.NewUseCase(
		queueRepository,
		orderRepository,
		settingsRepository,
		notify,
		txMgr,
		log,
	)
	updateAvailabilityUseCase := updateAvailabilityUC.NewUseCase(
		queueRepository,
		orderRepository,
		txMgr,
		log,
	)
	advanceQueueUseCase := advanceQueueUC.NewUseCase(
		queueRepository,
		orderRepository,
		settingsRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getWeekGrid := getWeekGridHandler.NewHandler(getWeekGridUseCase, log)
	scheduleAppointment := scheduleAppointmentHandler.NewHandler(scheduleAppointmentUseCase, log)
	updateQueueStatus := updateQueueStatusHandler.NewHandler(updateQueueStatusUseCase, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(updateAvailabilityUseCase, log)
	advanceQueue := advanceQueueHandler.NewHandler(advanceQueueUseCase, log)
	getQueue := getQueueHandler.NewHandler(queueSvc, log)
	getAppointments := getAppointmentsHandler.NewHandler(queueSvc, log)
	manageSessions := manageSessionsHandler.NewHandler(queueSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(settingsSvc, log)
	manageCatalog := manageCatalogHandler.NewHandler(catalogSvc, log)

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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Рабочие часы и лимит параллельных сеансов для витрины
	api.HandleFunc("/business-hours", getBusinessHours.Handle).Methods(http.MethodGet)

	// Активные пакеты каталога
	api.HandleFunc("/packages", manageCatalog.HandleList).Methods(http.MethodGet)

	// Редактор доступности клиента
	api.HandleFunc("/orders/{orderId}/availability", updateAvailability.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Admin-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Планирование ---
	// Недельная сетка слотов для позиции очереди
	protected.HandleFunc("/schedule/week-grid", getWeekGrid.Handle).Methods(http.MethodGet)

	// Все запланированные события в окне
	protected.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)

	// --- Очередь ---
	// Доска очереди
	protected.HandleFunc("/queue", getQueue.HandleList).Methods(http.MethodGet)

	// Ручной запуск прохода планировщика
	protected.HandleFunc("/queue/advance", advanceQueue.Handle).Methods(http.MethodPost)

	// Позиция очереди с сеансами
	protected.HandleFunc("/queue/{queueItemId}", getQueue.HandleGet).Methods(http.MethodGet)

	// Подтверждение слота (запись на встречу)
	protected.HandleFunc("/queue/{queueItemId}/appointment", scheduleAppointment.Handle).Methods(http.MethodPost)

	// Машина статусов позиции
	protected.HandleFunc("/queue/{queueItemId}/status", updateQueueStatus.Handle).Methods(http.MethodPost)

	// --- Сеансы ---
	protected.HandleFunc("/queue/{queueItemId}/sessions", manageSessions.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}", manageSessions.HandleUpdate).Methods(http.MethodPatch)
	protected.HandleFunc("/sessions/{sessionId}", manageSessions.HandleDelete).Methods(http.MethodDelete)

	// --- Настройки ---
	protected.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// --- Каталог ---
	protected.HandleFunc("/packages/reorder", manageCatalog.HandleReorder).Methods(http.MethodPost)

	// Запускаем планировщик фоновых задач
	var scheduler *cron.Cron
	if cfg.Cron.Enabled {
		scheduler = cron.New()

		if _, err := scheduler.AddFunc(cfg.Cron.AutoMoveSpec, func() {
			if _, err := advanceQueueUseCase.AutoMove(context.Background()); err != nil {
				log.Error("Cron: auto-move sweep failed: %v", err)
			}
		}); err != nil {
			log.Fatal("Failed to register auto-move cron job: %v", err)
		}

		if _, err := scheduler.AddFunc(cfg.Cron.ArchiveSpec, func() {
			if archived, err := advanceQueueUseCase.Archive(context.Background()); err != nil {
				log.Error("Cron: archive sweep failed: %v", err)
			} else if archived > 0 {
				log.Info("Cron: archived %d finished queue items", archived)
			}
		}); err != nil {
			log.Fatal("Failed to register archive cron job: %v", err)
		}

		scheduler.Start()
		log.Info("Cron scheduler started (auto_move=%q, archive=%q)",
			cfg.Cron.AutoMoveSpec, cfg.Cron.ArchiveSpec)
	}

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

	// Останавливаем планировщик
	if scheduler != nil {
		cronCtx := scheduler.Stop()
		<-cronCtx.Done()
		log.Info("Cron scheduler stopped")
	}

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
