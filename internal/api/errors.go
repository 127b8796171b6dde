package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// Fallback messages for errors that carry no client-safe message.
const (
	MsgInternalError   = "Internal Server Error"
	MsgProductionError = "Something went wrong"
	MsgRouteNotFound   = "Route not found"
	MsgInvalidBody     = "Invalid request body"
)

// MapErrorToStatusCode maps a classified error to an HTTP status code.
// Anything unclassified is a 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponder is the single place where errors become HTTP responses.
// It logs the redacted error, picks the status and writes a
// shared.ErrorResponse.
type ErrorResponder struct {
	logger     *slog.Logger
	production bool
}

// NewErrorResponder creates an ErrorResponder. In production the detail field
// is omitted and 500 messages are flattened.
func NewErrorResponder(logger *slog.Logger, production bool) *ErrorResponder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorResponder{
		logger:     logger.With(slog.String("component", "error_responder")),
		production: production,
	}
}

// Respond writes the response for err.
func (e *ErrorResponder) Respond(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := e.message(err, status)
	traceID := shared.GetTraceID(r.Context())

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log := logger.FromContextOrDefault(r.Context(), e.logger)
	log.LogAttrs(r.Context(), level, "API error response",
		slog.String("trace_id", traceID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status_code", status),
		slog.String("user_message", message),
		slog.String("error", redact.Error(err)),
		slog.String("error_type", fmt.Sprintf("%T", err)),
	)

	resp := shared.ErrorResponse{
		Success: false,
		Message: message,
		TraceID: traceID,
	}
	if !e.production && err != nil {
		resp.Detail = redact.Error(err)
	}
	shared.RespondWithJSON(w, r, status, resp)
}

// NotFound answers unmatched routes and methods.
func (e *ErrorResponder) NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, MsgRouteNotFound)
}

func (e *ErrorResponder) message(err error, status int) string {
	if status == http.StatusInternalServerError && e.production {
		return MsgProductionError
	}
	if msg, ok := domain.PublicMessage(err); ok {
		return msg
	}
	if status == http.StatusInternalServerError {
		return MsgInternalError
	}
	return http.StatusText(status)
}
