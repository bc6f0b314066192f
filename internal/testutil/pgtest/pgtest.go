// Package pgtest starts a PostgreSQL database with the service schema for integration tests
package pgtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every table created by db/init_pg_db.sql
var Tables = []string{"scan_sessions", "analytics", "leads", "page_view_events"}

// Database is a schema-initialized test database
type Database struct {
	DB        *gorm.DB
	container *postgres.PostgresContainer
}

// Start connects to the database named by TEST_DB_* environment variables,
// or starts a PostgreSQL container when TEST_DB_HOST is not set
func Start(ctx context.Context) (*Database, error) {
	d := &Database{}

	dsn, err := d.dsn(ctx)
	if err != nil {
		return nil, err
	}

	d.DB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		d.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := d.initializeSchema(); err != nil {
		d.Terminate(ctx)
		return nil, err
	}

	return d, nil
}

func (d *Database) dsn(ctx context.Context) (string, error) {
	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost != "" {
		dbPort := envOr("TEST_DB_PORT", "5432")
		dbUser := envOr("TEST_DB_USER", "postgres")
		dbPassword := envOr("TEST_DB_PASSWORD", "postgres")
		dbName := envOr("TEST_DB_NAME", "test_db")

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName), nil
	}

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return "", fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}
	d.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		d.Terminate(ctx)
		return "", fmt.Errorf("failed to get connection string: %w", err)
	}

	fmt.Printf("Started PostgreSQL container\n")
	return dsn, nil
}

// initializeSchema runs db/init_pg_db.sql
func (d *Database) initializeSchema() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	schemaSQL, err := os.ReadFile(SchemaPath()) //nolint:gosec,G304
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := sqlDB.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Reset empties every table. Tests that need concurrent connections cannot
// be isolated by a rolled back transaction, so they reset between runs instead.
func (d *Database) Reset(t testing.TB) {
	t.Helper()
	for _, table := range Tables {
		if err := d.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", table)).Error; err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

// Terminate stops the container, if one was started
func (d *Database) Terminate(ctx context.Context) {
	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if d.container != nil {
		if err := d.container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}
}

// SchemaPath returns the absolute path of db/init_pg_db.sql
func SchemaPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "db", "init_pg_db.sql")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
