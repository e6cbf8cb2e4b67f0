package internal

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"real-estate-system/storefront/internal/configs"
	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/domain"
)

func TestOpenStorageMemorySeedsFixtures(t *testing.T) {
	ctx := context.Background()
	storage, err := openStorage(ctx, &configs.AppConfig{}, configs.BackendMemory, contextkeys.NoopLogger())
	require.NoError(t, err)
	defer storage.Close(ctx)

	page, err := storage.ListProperties(ctx, domain.PropertyFilters{}, domain.PageRequest{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 14, page.Pagination.Total)

	count, err := storage.CountPropertiesByOwner(ctx, "owner-2")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestOpenStorageRejectsUnknownBackend(t *testing.T) {
	_, err := openStorage(context.Background(), &configs.AppConfig{}, configs.StorageBackend("redis"), contextkeys.NoopLogger())
	assert.Error(t, err)
}

func TestRunSeedRejectsMemoryBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	err := RunSeed(context.Background(), "memory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to seed")
}

func TestRunSeedPostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("DATABASE_URL", "")
	err := RunSeed(context.Background(), "postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewStorefrontWiresUseCases(t *testing.T) {
	cfg := &configs.ClientConfig{
		AppName:      "storefront",
		APIURL:       "http://127.0.0.1:1/api",
		StdoutLogger: configs.StdoutLogConfig{Level: "error"},
	}
	app, err := NewStorefront(cfg, io.Discard)
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.Store)
	assert.NotNil(t, app.LoadProperties)
	assert.NotNil(t, app.Owners)
	assert.NotNil(t, app.Media)
	assert.Nil(t, app.Store.SelectPagination())
}
