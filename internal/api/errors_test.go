package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"nil error", nil, http.StatusInternalServerError},
		{"validation", domain.NewValidationError("Title is required"), http.StatusBadRequest},
		{"conflict", domain.NewConflictError("User already exists", nil), http.StatusBadRequest},
		{"auth", domain.NewAuthError("Invalid token", nil), http.StatusUnauthorized},
		{"not found", domain.NewNotFoundError("Task not found"), http.StatusNotFound},
		{
			"wrapped not found",
			fmt.Errorf("handler: %w", domain.NewNotFoundError("Task not found")),
			http.StatusNotFound,
		},
		{"internal", domain.NewInternalError("failed", errors.New("boom")), http.StatusInternalServerError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorResponder_Respond(t *testing.T) {
	dbErr := errors.New("dial postgres://tasks:hunter22@db:5432/tasks: connection refused")

	tests := []struct {
		name          string
		production    bool
		err           error
		wantStatus    int
		wantMessage   string
		wantDetail    bool
		wantLogLevel  string
		forbiddenText string
	}{
		{
			name:         "validation error in development",
			err:          domain.NewValidationError("Title is required"),
			wantStatus:   http.StatusBadRequest,
			wantMessage:  "Title is required",
			wantDetail:   true,
			wantLogLevel: "DEBUG",
		},
		{
			name:         "auth error in production keeps its message",
			production:   true,
			err:          domain.NewAuthError("Token expired", errors.New("token is expired")),
			wantStatus:   http.StatusUnauthorized,
			wantMessage:  "Token expired",
			wantLogLevel: "DEBUG",
		},
		{
			name:          "internal error in development shows redacted detail",
			err:           domain.NewInternalError("failed to list tasks", dbErr),
			wantStatus:    http.StatusInternalServerError,
			wantMessage:   "failed to list tasks",
			wantDetail:    true,
			wantLogLevel:  "ERROR",
			forbiddenText: "hunter22",
		},
		{
			name:          "internal error in production is flattened",
			production:    true,
			err:           domain.NewInternalError("failed to list tasks", dbErr),
			wantStatus:    http.StatusInternalServerError,
			wantMessage:   MsgProductionError,
			wantLogLevel:  "ERROR",
			forbiddenText: "failed to list tasks",
		},
		{
			name:         "unclassified error in development",
			err:          errors.New("boom"),
			wantStatus:   http.StatusInternalServerError,
			wantMessage:  MsgInternalError,
			wantDetail:   true,
			wantLogLevel: "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
			responder := NewErrorResponder(log, tt.production)

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			req = req.WithContext(shared.SetTraceID(req.Context()))
			rec := httptest.NewRecorder()

			responder.Respond(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, shared.GetTraceID(req.Context()), body.TraceID)
			if tt.wantDetail {
				assert.NotEmpty(t, body.Detail)
			} else {
				assert.Empty(t, body.Detail)
			}
			if tt.forbiddenText != "" {
				assert.NotContains(t, rec.Body.String(), tt.forbiddenText)
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
			assert.Equal(t, tt.wantLogLevel, entry["level"])
			assert.Equal(t, float64(tt.wantStatus), entry["status_code"])
			assert.NotContains(t, logs.String(), "hunter22")
		})
	}
}

func TestErrorResponder_NotFound(t *testing.T) {
	responder := NewErrorResponder(nil, false)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()

	responder.NotFound(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, MsgRouteNotFound, decodeError(t, rec).Message)
}
