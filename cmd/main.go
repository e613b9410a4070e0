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

	blockSlotHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/block_slot"
	getPolicyHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_policy"
	getSlotsHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_slots"
	releaseSlotHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/release_slot"
	reserveSlotHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/reserve_slot"
	unblockSlotHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/unblock_slot"
	upsertPolicyHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/upsert_policy"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotService/internal/config"
	slotsCache "github.com/m04kA/SMC-SlotService/internal/infra/cache/slots"
	policyRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/policy"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
	policyService "github.com/m04kA/SMC-SlotService/internal/service/policy"
	slotsService "github.com/m04kA/SMC-SlotService/internal/service/slots"
	getSlotsUC "github.com/m04kA/SMC-SlotService/internal/usecase/get_slots"
	reserveSlotUC "github.com/m04kA/SMC-SlotService/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/logger"
	"github.com/m04kA/SMC-SlotService/pkg/metrics"
	"github.com/m04kA/SMC-SlotService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SlotService/pkg/txmanager"
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

	log.Info("Starting SMC-SlotService...")
	log.Info("Configuration loaded from config.toml")

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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		policyRepository *policyRepo.Repository
		slotRepository   *slotRepo.Repository
		txMgr            TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		policyRepository = policyRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		policyRepository = policyRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем Redis-кеш слотов (если включен)
	var cache *slotsCache.Cache
	if cfg.SlotsCache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.SlotsCache.Addr,
			Password: cfg.SlotsCache.Password,
			DB:       cfg.SlotsCache.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatal("Failed to ping redis: %v", err)
		}
		cancelPing()

		cache = slotsCache.NewCache(redisClient, time.Duration(cfg.SlotsCache.TTLSeconds)*time.Second)
		log.Info("Slots cache enabled (addr=%s, ttl=%ds)", cfg.SlotsCache.Addr, cfg.SlotsCache.TTLSeconds)
	}

	// Инициализируем сервисы
	policySvc := policyService.NewService(policyRepository, log)

	var slotsSvc *slotsService.Service
	if cache != nil {
		slotsSvc = slotsService.NewService(slotRepository, policyRepository, cache, log)
	} else {
		slotsSvc = slotsService.NewService(slotRepository, policyRepository, nil, log)
	}

	// Инициализируем use cases
	var (
		getSlotsUseCase    *getSlotsUC.UseCase
		reserveSlotUseCase *reserveSlotUC.UseCase
	)
	if cache != nil {
		getSlotsUseCase = getSlotsUC.NewUseCase(policyRepository, slotRepository, cache, txMgr, log)
		reserveSlotUseCase = reserveSlotUC.NewUseCase(slotRepository, policyRepository, cache, log)
	} else {
		getSlotsUseCase = getSlotsUC.NewUseCase(policyRepository, slotRepository, nil, txMgr, log)
		reserveSlotUseCase = reserveSlotUC.NewUseCase(slotRepository, policyRepository, nil, log)
	}

	// Инициализируем handlers
	upsertPolicy := upsertPolicyHandler.NewHandler(policySvc, log)
	getPolicy := getPolicyHandler.NewHandler(policySvc, log)
	getSlots := getSlotsHandler.NewHandler(getSlotsUseCase, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	releaseSlot := releaseSlotHandler.NewHandler(slotsSvc, log)
	blockSlot := blockSlotHandler.NewHandler(slotsSvc, log)
	unblockSlot := unblockSlotHandler.NewHandler(slotsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение политики scope
	api.HandleFunc("/policies", getPolicy.Handle).Methods(http.MethodGet)

	// Слоты scope на дату (лениво генерируются из политики)
	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание или замена политики scope
	protected.HandleFunc("/policies", upsertPolicy.Handle).Methods(http.MethodPut)

	// Бронирование одного места в слоте
	protected.HandleFunc("/slots/{slotId}/reserve", reserveSlot.Handle).Methods(http.MethodPost)

	// Освобождение одного места в слоте
	protected.HandleFunc("/slots/{slotId}/release", releaseSlot.Handle).Methods(http.MethodPost)

	// Административная блокировка слота
	protected.HandleFunc("/slots/{slotId}/block", blockSlot.Handle).Methods(http.MethodPost)

	// Снятие административной блокировки
	protected.HandleFunc("/slots/{slotId}/unblock", unblockSlot.Handle).Methods(http.MethodPost)

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
