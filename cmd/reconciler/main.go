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
	"github.com/feral-file/ff-lead-analytics/internal/config"
	"github.com/feral-file/ff-lead-analytics/internal/logger"
	"github.com/feral-file/ff-lead-analytics/internal/reconciler"
	"github.com/feral-file/ff-lead-analytics/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadReconcilerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "lead-analytics-reconciler",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	os.Exit(run(cfg))
}

func run(cfg *config.ReconcilerJobConfig) int {
	defer logger.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Reconciler.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Reconciler.Timeout)
		defer cancel()
	}

	calendar, err := analytics.NewCalendar(cfg.Analytics.Timezone)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("invalid analytics timezone: %w", err), zap.String("timezone", cfg.Analytics.Timezone))
		return 1
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to connect to database: %w", err), zap.String("host", cfg.Database.Host))
		return 1
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to configure connection pool: %w", err))
		return 1
	}

	rec := reconciler.NewReconciler(store.NewPGStore(db), calendar, adapter.NewClock(), reconciler.Config{
		Workers:       cfg.Reconciler.Workers,
		MaxRetries:    cfg.Reconciler.MaxRetries,
		RetryInterval: cfg.Reconciler.RetryInterval,
	})

	summary, err := rec.Run(ctx)
	fields := []zap.Field{
		zap.Int("listings_processed", summary.ListingsProcessed),
		zap.Int("records_created", summary.RecordsCreated),
		zap.Int("records_updated", summary.RecordsUpdated),
		zap.Int("groups_failed", summary.GroupsFailed),
	}
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("reconciliation failed: %w", err), fields...)
		return 1
	}

	logger.InfoCtx(ctx, "Reconciler job completed", fields...)
	return 0
}
