package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

// Storefront configures the CLI. Variables are prefixed with STOREFRONT_.
type Storefront struct {
	APIURL  string        `envconfig:"API_URL" default:"http://localhost:8080"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`

	// Token seeds the session with a bearer token and no user.
	Token string `envconfig:"TOKEN"`

	StorageDriver    string `envconfig:"STORAGE_DRIVER" default:"file"`
	StorageDir       string `envconfig:"STORAGE_DIR"`
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	StorageNamespace string `envconfig:"STORAGE_NAMESPACE" default:"default"`
	RunMigrations    bool   `envconfig:"RUN_MIGRATIONS" default:"true"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Backend configures the mock backend. Variables are prefixed with BACKEND_.
type Backend struct {
	Port string `envconfig:"PORT" default:"8080"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	PaymentDeclineRate float64       `envconfig:"PAYMENT_DECLINE_RATE" default:"0"`
	PaymentDelay       time.Duration `envconfig:"PAYMENT_DELAY" default:"0s"`

	// RabbitMQURL enables OrderPlaced publishing; empty logs events instead.
	RabbitMQURL string `envconfig:"RABBITMQ_URL"`

	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	SeedDemoUsers    bool     `envconfig:"SEED_DEMO_USERS" default:"true"`

	// RateLimitRequests is the shared request budget per window; 0 disables it.
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

func LoadStorefront() (Storefront, error) {
	var cfg Storefront
	if err := envconfig.Process("storefront", &cfg); err != nil {
		return Storefront{}, fmt.Errorf("load storefront config: %w", err)
	}
	if cfg.StorageDir == "" {
		cfg.StorageDir = defaultStorageDir()
	}
	return cfg, cfg.Validate()
}

func (c Storefront) Validate() error {
	switch c.StorageDriver {
	case storage.DriverMemory, storage.DriverFile:
	case storage.DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STOREFRONT_DATABASE_URL is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.APIURL == "" {
		return fmt.Errorf("STOREFRONT_API_URL must not be empty")
	}
	return nil
}

// StorageOptions maps the config onto storage.Open.
func (c Storefront) StorageOptions() storage.Options {
	return storage.Options{
		Driver:        c.StorageDriver,
		Dir:           c.StorageDir,
		DSN:           c.DatabaseURL,
		Namespace:     c.StorageNamespace,
		RunMigrations: c.RunMigrations,
	}
}

func LoadBackend() (Backend, error) {
	var cfg Backend
	if err := envconfig.Process("backend", &cfg); err != nil {
		return Backend{}, fmt.Errorf("load backend config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Backend) Validate() error {
	if c.PaymentDeclineRate < 0 || c.PaymentDeclineRate > 1 {
		return fmt.Errorf("BACKEND_PAYMENT_DECLINE_RATE must be between 0 and 1, got %v", c.PaymentDeclineRate)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("BACKEND_JWT_SECRET must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("BACKEND_TOKEN_TTL must be positive")
	}
	if c.RateLimitRequests < 0 {
		return fmt.Errorf("BACKEND_RATE_LIMIT_REQUESTS must not be negative")
	}
	if c.RateLimitRequests > 0 && c.RateLimitWindow <= 0 {
		return fmt.Errorf("BACKEND_RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func defaultStorageDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "storefront")
	}
	return ".storefront"
}
