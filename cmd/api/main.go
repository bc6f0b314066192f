package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-lead-analytics/internal/adapter"
	"github.com/feral-file/ff-lead-analytics/internal/analytics"
	"github.com/feral-file/ff-lead-analytics/internal/api/middleware"
	"github.com/feral-file/ff-lead-analytics/internal/api/server"
	"github.com/feral-file/ff-lead-analytics/internal/api/shared/executor"
	"github.com/feral-file/ff-lead-analytics/internal/config"
	"github.com/feral-file/ff-lead-analytics/internal/leads"
	"github.com/feral-file/ff-lead-analytics/internal/logger"
	"github.com/feral-file/ff-lead-analytics/internal/reconciler"
	"github.com/feral-file/ff-lead-analytics/internal/session"
	"github.com/feral-file/ff-lead-analytics/internal/store"
	"github.com/feral-file/ff-lead-analytics/internal/tracker"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "lead-analytics-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting lead analytics API")

	calendar, err := analytics.NewCalendar(cfg.Analytics.Timezone)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid analytics timezone", zap.Error(err), zap.String("timezone", cfg.Analytics.Timezone))
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()

	aggregator := analytics.NewAggregator(dataStore, calendar)
	eventTracker := tracker.NewTracker(dataStore, aggregator, calendar, tracker.Config{
		QRFallbackWindow: cfg.Attribution.QRFallbackWindow,
	})
	correlator := leads.NewCorrelator(dataStore, aggregator, calendar, clock)
	rec := reconciler.NewReconciler(dataStore, calendar, clock, reconciler.Config{
		Workers:       cfg.Reconciler.Workers,
		MaxRetries:    cfg.Reconciler.MaxRetries,
		RetryInterval: cfg.Reconciler.RetryInterval,
	})

	exec := executor.NewExecutor(dataStore, eventTracker, correlator, rec, calendar, clock, executor.Config{
		ReconcileTimeout: cfg.Reconciler.Timeout,
	})
	resolver := session.NewResolver(session.Config{
		CookieName: cfg.Session.CookieName,
		MaxAge:     cfg.Session.CookieMaxAge,
		Secure:     cfg.Session.CookieSecure,
	}, clock)

	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ListingBaseURL: cfg.Server.ListingBaseURL,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}
	srv := server.New(serverConfig, exec, resolver)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()
	logger.InfoCtx(ctx, "API server listening",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("timezone", calendar.Timezone()),
	)

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// ctx is canceled at this point
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("API server stopped")
}
