package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/auth"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/backend"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.LoadBackend()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	logger := logging.New("mock-backend", cfg.LogLevel, cfg.LogFormat)

	users := auth.NewDirectory()
	if cfg.SeedDemoUsers {
		seedDemoUsers(users, logger)
	}

	publisher, closePublisher := newPublisher(cfg, logger)
	defer closePublisher()

	router := backend.NewRouter(backend.Deps{
		Logger:           logger,
		Products:         catalog.NewMemoryRepository(catalog.SeedProducts()...),
		Orders:           order.NewMemoryRepository(),
		Users:            users,
		Tokens:           auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Payments:         payment.NewSimulator(cfg.PaymentDeclineRate, cfg.PaymentDelay),
		Events:           publisher,
		CORSAllowOrigins: cfg.CORSAllowOrigins,

		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.WithField("port", cfg.Port).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server error")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown error")
	}
}

func seedDemoUsers(users *auth.Directory, logger logrus.FieldLogger) {
	demo := []struct {
		name, email, password string
		role                  auth.Role
	}{
		{"Admin", "admin@example.com", "admin123", auth.RoleAdmin},
		{"Demo User", "user@example.com", "user123", auth.RoleUser},
	}
	for _, d := range demo {
		if _, err := users.Seed(d.name, d.email, d.password, d.role); err != nil {
			logger.WithError(err).WithField("email", d.email).Warn("seed demo user")
		}
	}
}

// newPublisher dials RabbitMQ when configured and falls back to logging
// events, so the backend runs without a broker.
func newPublisher(cfg config.Backend, logger logrus.FieldLogger) (events.Publisher, func()) {
	if cfg.RabbitMQURL == "" {
		return events.NewLogPublisher(logger), func() {}
	}

	conn, err := events.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.WithError(err).Warn("rabbitmq unavailable, logging events instead")
		return events.NewLogPublisher(logger), func() {}
	}
	pub, err := events.NewRabbitPublisher(conn)
	if err != nil {
		_ = conn.Close()
		logger.WithError(err).Warn("rabbitmq publisher setup failed, logging events instead")
		return events.NewLogPublisher(logger), func() {}
	}

	logger.Info("publishing events to rabbitmq")
	return pub, func() {
		_ = pub.Close()
		_ = conn.Close()
	}
}
