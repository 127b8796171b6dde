// Package main implements the entry point for the task management API
// server. Besides serving HTTP it can apply the SQL schema migrations
// (-migrate) or the GORM auto-migration (-automigrate) and exit.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a goose migration command and exit: up|down|status|version|reset")
	autoMigrate := flag.Bool("automigrate", false, "run the GORM schema auto-migration and exit")
	flag.Parse()

	if err := run(*migrateCmd, *autoMigrate); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run loads configuration and dispatches to the requested mode.
func run(migrateCmd string, autoMigrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"environment", cfg.Server.Environment,
		"database_backend", cfg.Database.Backend,
		"database_driver", cfg.Database.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case migrateCmd != "":
		return runMigrations(ctx, cfg, migrateCmd, log)
	case autoMigrate:
		return runAutoMigrate(ctx, cfg, log)
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
