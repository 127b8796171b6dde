package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// RequestLogger logs each request on arrival and on completion. Bodies of
// POST, PUT and PATCH requests are logged at DEBUG with credential and token
// fields filtered; the body is restored for the handler.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.FromContext(r.Context())

		log.Info("request started",
			slog.String("method", r.Method),
			slog.String("url", r.URL.RequestURI()),
			slog.String("client_ip", r.RemoteAddr),
			slog.String("user_agent", userAgent(r)),
		)

		if hasLoggableBody(r) && log.Enabled(r.Context(), slog.LevelDebug) {
			body, err := io.ReadAll(io.LimitReader(r.Body, shared.MaxRequestBodyBytes+1))
			if err == nil {
				r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), r.Body))
				log.Debug("request body", slog.String("body", redact.JSONBody(body)))
			}
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		log.Info("request completed",
			slog.String("method", r.Method),
			slog.String("url", r.URL.RequestURI()),
			slog.Int("status", status),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func hasLoggableBody(r *http.Request) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

func userAgent(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}
	return "Unknown"
}
