package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{
			name:   "successful response",
			status: http.StatusOK,
			data: map[string]interface{}{
				"message": "success",
				"data":    123,
			},
			expectedBody: `{"message":"success","data":123}`,
		},
		{
			name:         "created response",
			status:       http.StatusCreated,
			data:         MessageResponse{Message: "made"},
			expectedBody: `{"message":"made"}`,
		},
		{
			name:         "nil response",
			status:       http.StatusOK,
			data:         nil,
			expectedBody: `null`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, req, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestRespondWithMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()

	RespondWithMessage(w, req, http.StatusOK, "Logged out successfully")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Run("with trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		req = req.WithContext(context.WithValue(req.Context(), TraceIDKey, "abc123"))
		w := httptest.NewRecorder()

		RespondWithError(w, req, http.StatusNotFound, "Route not found")

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, map[string]any{
			"success": false,
			"message": "Route not found",
			"traceId": "abc123",
		}, body)
	})

	t.Run("without trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		w := httptest.NewRecorder()

		RespondWithError(w, req, http.StatusUnauthorized, "Invalid token")

		assert.JSONEq(t, `{"success":false,"message":"Invalid token"}`, w.Body.String())
	})
}
