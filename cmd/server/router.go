package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/api/shared"
)

// MsgRunning is the body of the root liveness route.
const MsgRunning = "Task Management API is running"

// setupRouter creates the router with the middleware chain and all routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.Recoverer(app.errors))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.CORS(app.config.Server.AllowedOrigin))

	r.NotFound(app.errors.NotFound)
	r.MethodNotAllowed(app.errors.NotFound)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithMessage(w, r, http.StatusOK, MsgRunning)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.authHandler.Register)
		r.Post("/login", app.authHandler.Login)
		r.Post("/refresh", app.authHandler.RefreshToken)
		r.Post("/logout", app.authHandler.Logout)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(app.authMiddleware.Authenticate)

		r.Get("/", app.taskHandler.ListTasks)
		r.Post("/", app.taskHandler.CreateTask)
		r.Get("/{id}", app.taskHandler.GetTask)
		r.Patch("/{id}", app.taskHandler.UpdateTask)
		r.Patch("/{id}/toggle", app.taskHandler.ToggleTask)
		r.Delete("/{id}", app.taskHandler.DeleteTask)
	})

	return r
}
