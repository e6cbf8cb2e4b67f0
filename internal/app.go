package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	logger_adapter "real-estate-system/storefront/internal/adapters/logger"
	rabbitmq_adapter "real-estate-system/storefront/internal/adapters/rabbitmq"
	"real-estate-system/storefront/internal/adapters/rest"
	"real-estate-system/storefront/internal/configs"
	"real-estate-system/storefront/internal/contracts"
	"real-estate-system/storefront/internal/core/port"
	"real-estate-system/storefront/pkg/rabbitmq/rabbitmq_common"
	"real-estate-system/storefront/pkg/rabbitmq/rabbitmq_producer"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

// App — mock API со всеми зависимостями.
type App struct {
	config    *configs.AppConfig
	storage   port.MockStoragePort
	apiServer *rest.Server

	rabbitMQConnManager *rabbitmq_common.ConnectionManager
	eventsProducer      *rabbitmq_producer.Publisher

	logging *logger_adapter.Setup
	logger  port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	logging, err := logger_adapter.NewFromConfig(appConfig.AppName, appConfig.StdoutLogger, appConfig.FluentBit, os.Stdout)
	if err != nil {
		return nil, err
	}
	baseLogger := logging.Logger
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": logging.ActiveCount, "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	app := &App{config: appConfig, logging: logging, logger: appLogger}

	storage, err := openStorage(context.Background(), appConfig, appConfig.StorageBackend, appLogger)
	if err != nil {
		app.close()
		return nil, err
	}
	app.storage = storage
	appLogger.Info("Storage initialized", port.Fields{"backend": string(appConfig.StorageBackend)})

	validator, err := contracts.NewValidator()
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to compile request schemas: %w", err)
	}

	events, err := app.newEventPublisher(baseLogger)
	if err != nil {
		app.close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	apiHandlers := rest.NewMockAPIHandler(storage, validator, events, appConfig.AppName)
	app.apiServer = rest.NewServer(rest.ServerConfig{
		Port:               appConfig.Rest.Port,
		CORSAllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
		RateLimitRPS:       appConfig.Rest.RateLimitRPS,
		RateLimitBurst:     appConfig.Rest.RateLimitBurst,
	}, apiHandlers, baseLogger, registry)
	appLogger.Info("REST API server configured.", nil)

	return app, nil
}

// newEventPublisher поднимает издателя событий в RabbitMQ. Если брокер выключен,
// события отбрасываются.
func (a *App) newEventPublisher(baseLogger port.LoggerPort) (port.ChangeEventPublisherPort, error) {
	if !a.config.RabbitMQ.Enabled {
		a.logger.Info("RabbitMQ disabled, change events are not published", nil)
		return rabbitmq_adapter.NoopChangeEventPublisher{}, nil
	}

	rabbitLogger := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, rabbitLogger)
	if err != nil {
		a.logger.Error("Failed to create RabbitMQ connection manager", err, nil)
		return nil, fmt.Errorf("failed to create RabbitMQ connection manager: %w", err)
	}
	a.rabbitMQConnManager = connManager

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:             rabbitmq_adapter.ExchangeName,
		ExchangeType:             rabbitmq_adapter.ExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitLogger,
	}, connManager)
	if err != nil {
		a.logger.Error("Failed to create change event producer", err, nil)
		return nil, fmt.Errorf("failed to create change event producer: %w", err)
	}
	a.eventsProducer = producer

	publisher, err := rabbitmq_adapter.NewChangeEventPublisher(producer)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Change events will be published to RabbitMQ", port.Fields{"exchange": rabbitmq_adapter.ExchangeName})
	return publisher, nil
}

// Run запускает сервер и ждет сигнала остановки.
func (a *App) Run() error {
	defer a.close()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.Port})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
		return err
	}
}

// close освобождает ресурсы в обратном порядке. Безопасен для частично собранного App.
func (a *App) close() {
	a.logger.Info("Shutdown sequence initiated...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.apiServer != nil {
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}
	}

	if a.eventsProducer != nil {
		if err := a.eventsProducer.Close(); err != nil {
			a.logger.Error("Error closing change event producer", err, nil)
		}
	}
	if a.rabbitMQConnManager != nil {
		if err := a.rabbitMQConnManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
		}
	}

	if a.storage != nil {
		if err := a.storage.Close(ctx); err != nil {
			a.logger.Error("Error closing storage", err, nil)
		} else {
			a.logger.Info("Storage closed.", nil)
		}
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if err := a.logging.Close(); err != nil {
		// fluent может быть уже недоступен
		fmt.Fprintf(os.Stderr, "ERROR: Error closing fluent client: %v\n", err)
	}
}
