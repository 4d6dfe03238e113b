package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

func TestLoadStorefront_Defaults(t *testing.T) {
	t.Setenv("STOREFRONT_STORAGE_DIR", "/tmp/sf")

	cfg, err := LoadStorefront()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, storage.DriverFile, cfg.StorageDriver)
	assert.Equal(t, "/tmp/sf", cfg.StorageDir)
	assert.True(t, cfg.RunMigrations)
}

func TestLoadStorefront_Overrides(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "http://backend:9000")
	t.Setenv("STOREFRONT_TIMEOUT", "2s")
	t.Setenv("STOREFRONT_TOKEN", "abc")
	t.Setenv("STOREFRONT_STORAGE_DRIVER", "postgres")
	t.Setenv("STOREFRONT_DATABASE_URL", "postgres://x")
	t.Setenv("STOREFRONT_STORAGE_NAMESPACE", "alice")

	cfg, err := LoadStorefront()
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000", cfg.APIURL)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, "abc", cfg.Token)

	opts := cfg.StorageOptions()
	assert.Equal(t, storage.DriverPostgres, opts.Driver)
	assert.Equal(t, "postgres://x", opts.DSN)
	assert.Equal(t, "alice", opts.Namespace)
}

func TestLoadStorefront_Invalid(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STOREFRONT_STORAGE_DRIVER", "redis")
		_, err := LoadStorefront()
		assert.Error(t, err)
	})

	t.Run("postgres without dsn", func(t *testing.T) {
		t.Setenv("STOREFRONT_STORAGE_DRIVER", "postgres")
		_, err := LoadStorefront()
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("STOREFRONT_TIMEOUT", "soon")
		_, err := LoadStorefront()
		assert.Error(t, err)
	})
}

func TestLoadBackend(t *testing.T) {
	t.Setenv("BACKEND_PORT", "9090")
	t.Setenv("BACKEND_PAYMENT_DECLINE_RATE", "0.25")
	t.Setenv("BACKEND_CORS_ALLOW_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadBackend()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.InDelta(t, 0.25, cfg.PaymentDeclineRate, 1e-9)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.SeedDemoUsers)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestLoadBackend_RejectsNegativeRateLimit(t *testing.T) {
	t.Setenv("BACKEND_RATE_LIMIT_REQUESTS", "-1")
	_, err := LoadBackend()
	assert.Error(t, err)
}

func TestLoadBackend_RejectsDeclineRateOutOfRange(t *testing.T) {
	t.Setenv("BACKEND_PAYMENT_DECLINE_RATE", "1.5")
	_, err := LoadBackend()
	assert.Error(t, err)
}
