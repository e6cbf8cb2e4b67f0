package configs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadClientConfigDefaults(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("NEXT_PUBLIC_API_URL", "")
	t.Setenv("HTTP_TIMEOUT_MS", "")
	t.Setenv("HTTP_RETRIES", "")
	t.Setenv("CACHE_TTL_SECONDS", "")

	cfg, err := LoadClientConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retries)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestLoadClientConfigNextPublicAlias(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("NEXT_PUBLIC_API_URL", "http://api.local/api")

	cfg, err := LoadClientConfig(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "http://api.local/api", cfg.APIURL)

	t.Setenv("API_URL", "http://primary/api")
	cfg, err = LoadClientConfig(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "http://primary/api", cfg.APIURL)
}

func TestLoadConfigBackends(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("PORT", "")
	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, "5000", cfg.Rest.Port)
	assert.Equal(t, DefaultMongoURI, cfg.Mongo.URI)

	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err = LoadConfig(missingEnvFile(t))
	assert.Error(t, err)

	t.Setenv("STORAGE_BACKEND", "redis")
	_, err = LoadConfig(missingEnvFile(t))
	assert.Error(t, err)
}

func TestEnvHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("HTTP_RETRIES", "many")
	assert.Equal(t, 3, getEnvAsInt("HTTP_RETRIES", 3))

	t.Setenv("RABBITMQ_ENABLED", "maybe")
	assert.False(t, getEnvAsBool("RABBITMQ_ENABLED", false))

	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a, http://b,,")
	assert.Equal(t, []string{"http://a", "http://b"}, getEnvAsList("CORS_ALLOWED_ORIGINS", nil))
}
