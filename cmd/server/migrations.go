package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/gormstore"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/pressly/goose/v3"
)

// runMigrations executes a goose command against the SQL schema embedded in
// the postgres package.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	log := logger.With(
		"correlation_id", uuid.NewString(),
		"component", "migrations",
		"command", command,
	)

	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("goose migrations require the %q driver, got %q", config.DriverPostgres, cfg.Database.Driver)
	}

	db, err := openSQLDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", "error", err)
		}
	}()

	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetBaseFS(postgres.MigrationsFS)
	goose.SetTableName(postgres.MigrationsTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	log.Info("Starting migration operation", "url", maskDatabaseURL(cfg.Database.URL))
	start := time.Now()

	dir := postgres.MigrationsDir
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, dir)
	case "down":
		err = goose.DownContext(ctx, db, dir)
	case "reset":
		err = goose.ResetContext(ctx, db, dir)
	case "status":
		err = goose.StatusContext(ctx, db, dir)
	case "version":
		err = goose.VersionContext(ctx, db, dir)
	default:
		return fmt.Errorf("unknown migration command: %s (expected up, down, reset, status or version)", command)
	}
	if err != nil {
		log.Error("Migration command failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	log.Info("Migration command executed successfully", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// runAutoMigrate brings the GORM schema up to date and exits.
func runAutoMigrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := gormstore.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := gormstore.Close(db); err != nil {
			logger.Error("Error closing database connection", "error", err)
		}
	}()

	if err := gormstore.AutoMigrate(db); err != nil {
		return err
	}
	logger.Info("Schema auto-migration completed", "driver", cfg.Database.Driver)
	return nil
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at ERROR without exiting; the failing goose call returns an
// error that main reports.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// maskDatabaseURL masks the password in a database URL or key/value DSN for
// safe logging.
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		if _, hasPassword := parsedURL.User.Password(); hasPassword {
			parsedURL.User = url.UserPassword(parsedURL.User.Username(), "****")
		}
		return redact.DSNPassword(parsedURL.String(), "****")
	}

	return redact.DSNPassword(dbURL, "****")
}
