package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/gormstore"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/store"
)

// storage is the store pair selected by configuration plus the function
// that releases its connection pool.
type storage struct {
	users store.UserStore
	tasks store.TaskStore
	close func() error
}

// openStorage connects the configured backend. The GORM backend brings its
// schema up to date on every start; the SQL backend expects -migrate up to
// have been run.
func openStorage(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*storage, error) {
	switch cfg.Backend {
	case config.BackendSQL:
		db, err := openSQLDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connection established", "backend", cfg.Backend, "url", maskDatabaseURL(cfg.URL))
		return &storage{
			users: postgres.NewPostgresUserStore(db, logger),
			tasks: postgres.NewPostgresTaskStore(db, logger),
			close: db.Close,
		}, nil

	case config.BackendGORM:
		db, err := gormstore.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := gormstore.AutoMigrate(db); err != nil {
			_ = gormstore.Close(db)
			return nil, err
		}
		logger.Info("Database connection established",
			"backend", cfg.Backend,
			"driver", cfg.Driver,
			"url", maskDatabaseURL(cfg.URL))
		return &storage{
			users: gormstore.NewUserStore(db, logger),
			tasks: gormstore.NewTaskStore(db, logger),
			close: func() error { return gormstore.Close(db) },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database backend %q", cfg.Backend)
	}
}

// openSQLDatabase opens a pgx-backed *sql.DB and verifies the connection.
func openSQLDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns / 2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
