package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/api"
	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// application holds the wired dependencies of the running server.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	storage *storage

	errors         *api.ErrorResponder
	authHandler    *api.AuthHandler
	taskHandler    *api.TaskHandler
	authMiddleware *middleware.AuthMiddleware
}

// newApplication opens storage and builds the service and handler graph.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	st, err := openStorage(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	app, err := buildApplication(cfg, logger, st)
	if err != nil {
		_ = st.close()
		return nil, err
	}
	return app, nil
}

// buildApplication wires services and handlers on top of an open storage.
func buildApplication(cfg *config.Config, logger *slog.Logger, st *storage) (*application, error) {
	tokens, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	authService := service.NewAuthService(st.users, tokens, hasher, logger)
	taskService := service.NewTaskService(st.tasks, cfg.Tasks, logger)

	errs := api.NewErrorResponder(logger, cfg.Server.IsProduction())

	return &application{
		config:         cfg,
		logger:         logger,
		storage:        st,
		errors:         errs,
		authHandler:    api.NewAuthHandler(authService, errs, logger),
		taskHandler:    api.NewTaskHandler(taskService, errs, logger),
		authMiddleware: middleware.NewAuthMiddleware(authService, errs, logger),
	}, nil
}

// Run serves HTTP until ctx is canceled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()
	return app.startHTTPServer(ctx, app.setupRouter())
}

func (app *application) cleanup() {
	if app.storage == nil {
		return
	}
	app.logger.Info("Closing database connection")
	if err := app.storage.close(); err != nil {
		app.logger.Error("Error closing database connection", "error", err)
	}
}
