package internal

import (
	"context"
	"fmt"
	"time"

	memory_adapter "real-estate-system/storefront/internal/adapters/memory"
	mongodb_adapter "real-estate-system/storefront/internal/adapters/mongodb"
	postgres_adapter "real-estate-system/storefront/internal/adapters/postgres"
	"real-estate-system/storefront/internal/configs"
	"real-estate-system/storefront/internal/core/port"
	"real-estate-system/storefront/internal/fixtures"
	"real-estate-system/storefront/pkg/mongodb"
	"real-estate-system/storefront/pkg/postgres"
)

// seedableStorage — хранилище, которое умеет заливать набор данных целиком.
type seedableStorage interface {
	port.MockStoragePort
	port.SeederPort
}

const storageConnectTimeout = 10 * time.Second

// openStorage подключает выбранный бэкенд. Память сразу заполняется фикстурами,
// внешние базы заполняются отдельной командой seed.
func openStorage(ctx context.Context, cfg *configs.AppConfig, backend configs.StorageBackend, logger port.LoggerPort) (seedableStorage, error) {
	switch backend {
	case configs.BackendMemory:
		storage := memory_adapter.NewStorage()
		data, err := fixtures.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load fixtures: %w", err)
		}
		if err := storage.Seed(ctx, data); err != nil {
			return nil, fmt.Errorf("failed to seed memory storage: %w", err)
		}
		logger.Info("In-memory storage seeded from fixtures", port.Fields{
			"properties": len(data.Properties),
			"owners":     len(data.Owners),
		})
		return storage, nil

	case configs.BackendMongoDB:
		client, db, err := mongodb.NewClient(ctx, mongodb.Config{
			URI:            cfg.Mongo.URI,
			Database:       cfg.Mongo.Database,
			ConnectTimeout: storageConnectTimeout,
		})
		if err != nil {
			logger.Error("Failed to connect to MongoDB", err, nil)
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		storage, err := mongodb_adapter.NewMongoStorageAdapter(client, db)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("failed to create mongodb storage adapter: %w", err)
		}
		logger.Info("Successfully connected to MongoDB!", port.Fields{"database": cfg.Mongo.Database})
		return storage, nil

	case configs.BackendPostgres:
		pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.Postgres.DatabaseURL})
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		storage, err := postgres_adapter.NewPostgresStorageAdapter(pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create postgres storage adapter: %w", err)
		}
		if err := storage.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ensure postgres schema: %w", err)
		}
		logger.Info("Successfully connected to PostgreSQL pool!", nil)
		return storage, nil
	}

	return nil, fmt.Errorf("unsupported storage backend %q", backend)
}
