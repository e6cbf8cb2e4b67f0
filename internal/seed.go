package internal

import (
	"context"
	"fmt"
	"os"

	logger_adapter "real-estate-system/storefront/internal/adapters/logger"
	"real-estate-system/storefront/internal/configs"
	"real-estate-system/storefront/internal/core/port"
	"real-estate-system/storefront/internal/fixtures"
)

// RunSeed заливает фикстуры во внешнюю базу mock API, удаляя прежние данные.
func RunSeed(ctx context.Context, backendName string) error {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading application configuration: %w", err)
	}

	backend, err := configs.ParseStorageBackend(backendName)
	if err != nil {
		return err
	}
	if backend == configs.BackendMemory {
		return fmt.Errorf("backend %q keeps no data between runs, nothing to seed", backend)
	}
	if backend == configs.BackendPostgres && appConfig.Postgres.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required for the postgres backend")
	}

	logging, err := logger_adapter.NewFromConfig(appConfig.AppName+"-seed", appConfig.StdoutLogger, appConfig.FluentBit, os.Stdout)
	if err != nil {
		return err
	}
	defer logging.Close()
	logger := logging.Logger.WithFields(port.Fields{"component": "seed", "backend": string(backend)})

	data, err := fixtures.Load()
	if err != nil {
		logger.Error("Failed to load fixtures", err, nil)
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	storage, err := openStorage(ctx, appConfig, backend, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(context.Background()); err != nil {
			logger.Error("Error closing storage", err, nil)
		}
	}()

	logger.Info("Seeding database...", nil)
	if err := storage.Seed(ctx, data); err != nil {
		logger.Error("Seeding failed", err, nil)
		return fmt.Errorf("seeding failed: %w", err)
	}

	logger.Info("Database seeded successfully", port.Fields{
		"owners":     len(data.Owners),
		"properties": len(data.Properties),
		"images":     len(data.Images),
		"traces":     len(data.Traces),
	})
	return nil
}
