package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	cache_adapter "real-estate-system/internal/adapters/cache"
	logger_adapter "real-estate-system/internal/adapters/logger"
	postgres_adapter "real-estate-system/internal/adapters/postgres"
	rabbitmq_adapter "real-estate-system/internal/adapters/rabbitmq"
	"real-estate-system/internal/adapters/rest"
	"real-estate-system/internal/configs"
	"real-estate-system/internal/constants"
	"real-estate-system/internal/contracts"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/usecase"
	"sync"
	"syscall"

	fluentlogger "real-estate-system/pkg/fluent_logger"
	"real-estate-system/pkg/postgres"
	"real-estate-system/pkg/rabbitmq/rabbitmq_common"
	"real-estate-system/pkg/rabbitmq/rabbitmq_consumer"
	"real-estate-system/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	// Фоновые процессы: прогрев кеша, слушатель событий брокера
	backgroundProcesses map[string]port.BackgroundProcessPort

	connManager          *rabbitmq_common.ConnectionManager
	searchEventsProducer *rabbitmq_producer.Publisher
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: !appConfig.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:              appConfig,
		fluentClient:        fluentClient,
		logger:              appLogger,
		backgroundProcesses: make(map[string]port.BackgroundProcessPort),
	}

	if err := application.wire(baseLogger); err != nil {
		application.closeResources()
		return nil, err
	}
	return application, nil
}

// wire создает адаптеры, use case'ы и REST-сервер. При ошибке уже созданные
// ресурсы закрывает вызывающий через closeResources.
func (a *App) wire(baseLogger port.LoggerPort) error {
	cfg := a.config
	appLogger := a.logger

	// 1. Инициализация низкоуровневых зависимостей
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL:    cfg.Database.URL,
		MaxConns:       int32(cfg.Database.MaxConns),
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.dbPool = dbPool
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	developerRepository, err := postgres_adapter.NewPostgresDeveloperRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create developer repository: %w", err)
	}
	listingsRepository, err := postgres_adapter.NewPostgresListingsRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create listings repository: %w", err)
	}
	appLogger.Info("Postgres adapters initialized.", nil)

	cacheLogger := baseLogger.WithFields(port.Fields{"component": "developers_cache"})
	developersCache, err := cache_adapter.NewCachedDeveloperDirectory(developerRepository, cfg.DevelopersCache.TTL, cacheLogger)
	if err != nil {
		return fmt.Errorf("failed to create developers cache: %w", err)
	}
	a.backgroundProcesses["Developers Cache Refresher"] = developersCache

	// 2. Брокер опционален: без него события поиска не отправляются,
	// а кеш живет только по TTL
	var searchEvents port.SearchEventPublisherPort = port.NoopSearchEventPublisher{}
	if cfg.RabbitMQ.Enabled {
		searchEvents, err = a.wireRabbitMQ(baseLogger, developersCache)
		if err != nil {
			return err
		}
	} else {
		appLogger.Info("RabbitMQ disabled, search events are not published.", nil)
	}

	// 3. ИНИЦИАЛИЗАЦИЯ USE CASES
	resolveUseCase := usecase.NewResolveSearchParamsUseCase(developersCache, searchEvents)
	searchListingsUseCase := usecase.NewSearchListingsUseCase(resolveUseCase, listingsRepository)
	applySortUseCase := usecase.NewApplySortUseCase(listingsRepository)
	listDevelopersUseCase := usecase.NewListDevelopersUseCase(developersCache)
	appLogger.Info("All use cases initialized.", nil)

	// 4. REST API Server
	validator, err := contracts.NewValidator()
	if err != nil {
		appLogger.Error("Failed to compile request schemas", err, nil)
		return fmt.Errorf("failed to compile request schemas: %w", err)
	}

	searchHandler := rest.NewSearchHandler(resolveUseCase, searchListingsUseCase, applySortUseCase, validator)
	developersHandler := rest.NewDevelopersHandler(listDevelopersUseCase)

	a.apiServer = rest.NewServer(rest.ServerConfig{
		Port:               cfg.Rest.PORT,
		CORSAllowedOrigins: cfg.Rest.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimit.RPS,
		RateLimitBurst:     cfg.RateLimit.Burst,
	}, searchHandler, developersHandler, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return nil
}

func (a *App) wireRabbitMQ(baseLogger port.LoggerPort, developersCache *cache_adapter.CachedDeveloperDirectory) (port.SearchEventPublisherPort, error) {
	cfg := a.config
	appLogger := a.logger

	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: cfg.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		appLogger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager
	appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: cfg.RabbitMQ.URL},
		ExchangeName:             cfg.RabbitMQ.Exchange,
		ExchangeType:             "topic",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,

		Logger: rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		appLogger.Error("Failed to create search events producer", err, nil)
		return nil, fmt.Errorf("failed to create search events producer: %w", err)
	}
	a.searchEventsProducer = producer

	searchEvents, err := rabbitmq_adapter.NewSearchEventPublisher(producer, constants.RoutingKeySearchResolved)
	if err != nil {
		return nil, err
	}

	listener, err := rabbitmq_adapter.NewDevelopersChangedListener(rabbitmq_consumer.ConsumerConfig{
		Config:        rabbitmq_common.Config{URL: cfg.RabbitMQ.URL},
		QueueName:     cfg.RabbitMQ.DevelopersQueue,
		DurableQueue:  true,
		ExchangeName:  cfg.RabbitMQ.Exchange,
		ExchangeType:  "topic",
		RoutingKeys:   []string{constants.RoutingKeyDevelopersChanged},
		PrefetchCount: 1,
		ConsumerTag:   "search-service-developers-listener",
	}, connManager, developersCache, baseLogger)
	if err != nil {
		appLogger.Error("Failed to create developers listener", err, nil)
		return nil, err
	}
	a.backgroundProcesses["Developers Changed Listener"] = listener
	appLogger.Info("RabbitMQ adapters initialized.", nil)

	return searchEvents, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Создаем единый контекст для всего приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	var wg sync.WaitGroup
	errorsCh := make(chan error, len(a.backgroundProcesses)+1)

	a.logger.Info("Application is starting...", nil)

	for name, process := range a.backgroundProcesses {
		wg.Add(1)
		go func(name string, process port.BackgroundProcessPort) {
			defer wg.Done()
			processLogger := a.logger.WithFields(port.Fields{"process_name": name})
			processLogger.Info("Starting background process...", nil)

			if err := process.Start(appCtx); err != nil && !errors.Is(err, context.Canceled) {
				processLogger.Error("Background process stopped with an unexpected error", err, nil)
				errorsCh <- fmt.Errorf("%s error: %w", name, err)
				return
			}
			processLogger.Info("Background process stopped gracefully.", nil)
		}(name, process)
	}

	go func() {
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case runErr = <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", runErr, nil)
	}

	a.logger.Info("Shutdown sequence initiated...", nil)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.config.Rest.ShutdownTimeout)
	defer cancelShutdown()
	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	cancelApp()
	a.logger.Info("Waiting for background processes to finish...", nil)
	wg.Wait()
	a.logger.Info("All background processes finished.", nil)

	a.closeResources()
	return runErr
}

// closeResources закрывает все, что успело создаться, в обратном порядке.
func (a *App) closeResources() {
	for name, process := range a.backgroundProcesses {
		if err := process.Close(); err != nil {
			a.logger.Error("Error closing background process", err, port.Fields{"process_name": name})
		}
	}

	if a.searchEventsProducer != nil {
		if err := a.searchEventsProducer.Close(); err != nil {
			a.logger.Error("Error closing search events producer", err, nil)
		}
	}

	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}

	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// Логируем в stdout, так как fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

func parseLogLevel(levelStr string) slog.Level {
	level, ok := logger_adapter.ParseLevel(levelStr)
	if !ok {
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
	}
	return level
}
