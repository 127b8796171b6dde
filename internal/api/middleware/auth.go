package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// Authenticator resolves an access token to the caller it was issued for.
// It returns a domain.ErrUnauthorized error for missing, malformed, expired
// or orphaned tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*domain.Identity, error)
}

// ErrorResponder writes the response for a failed request.
type ErrorResponder interface {
	Respond(w http.ResponseWriter, r *http.Request, err error)
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	auth   Authenticator
	errors ErrorResponder
	logger *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(auth Authenticator, errors ErrorResponder, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		auth:   auth,
		errors: errors,
		logger: logger.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate validates the bearer token from the Authorization header and
// stores the caller's domain.Identity in the request context. The user is
// looked up on every request.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.auth.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			m.errors.Respond(w, r, err)
			return
		}

		logger.FromContextOrDefault(r.Context(), m.logger).
			Debug("request authenticated", slog.String("user_id", identity.ID.String()))

		next.ServeHTTP(w, r.WithContext(shared.WithIdentity(r.Context(), *identity)))
	})
}

// bearerToken extracts the token of an "Authorization: Bearer <token>"
// header. Any other shape yields "".
func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
