package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// AuthResult is a freshly issued token pair and the user it belongs to.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         domain.Identity
}

// AuthService registers users and issues and checks tokens.
type AuthService interface {
	// Register creates a user and signs them in.
	Register(ctx context.Context, email, password string) (*AuthResult, error)

	// Login verifies credentials and issues a new token pair.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)

	// Logout is stateless; tokens stay valid until they expire.
	Logout(ctx context.Context) error

	// Authenticate resolves an access token to the identity of an existing user.
	Authenticate(ctx context.Context, accessToken string) (*domain.Identity, error)
}

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	users    store.UserStore
	tokens   auth.JWTService
	hasher   auth.PasswordHasher
	validate *validator.Validate
	logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users store.UserStore,
	tokens auth.JWTService,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *AuthServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		validate: validator.New(),
		logger:   logger.With("component", "auth_service"),
	}
}

var _ AuthService = (*AuthServiceImpl)(nil)

// Register implements AuthService.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.NewValidationError(MsgCredentialsRequired)
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, domain.NewValidationError(MsgInvalidEmail)
	}
	if len(password) > domain.MaxPasswordBytes {
		return nil, domain.NewValidationError(MsgPasswordTooLong)
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Debug("registration rejected: email taken")
		return nil, domain.NewConflictError(MsgUserExists, nil)
	case !errors.Is(err, store.ErrUserNotFound):
		return nil, domain.NewInternalError("failed to look up user", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	user, err := domain.NewUser(email, hash)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			return nil, domain.NewConflictError(MsgUserExists, err)
		}
		return nil, domain.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return s.issue(ctx, user)
}

// Login implements AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.NewValidationError(MsgCredentialsRequired)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.NewInternalError("failed to look up user", err)
		}
		// Spend the same bcrypt work as a real comparison.
		_ = s.hasher.Compare(s.dummyPasswordHash(), password)
		return nil, domain.NewAuthError(MsgInvalidCredentials, nil)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Debug("login rejected: password mismatch", "user_id", user.ID)
		return nil, domain.NewAuthError(MsgInvalidCredentials, nil)
	}

	return s.issue(ctx, user)
}

// Refresh implements AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, domain.NewValidationError(MsgRefreshTokenRequired)
	}

	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredRefreshToken) {
			return nil, domain.NewAuthError(MsgRefreshTokenExpired, err)
		}
		return nil, domain.NewAuthError(MsgInvalidRefreshToken, err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.NewAuthError(MsgInvalidRefreshToken, err)
		}
		return nil, domain.NewInternalError("failed to look up user", err)
	}

	return s.issue(ctx, user)
}

// Logout implements AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context) error {
	return nil
}

// Authenticate implements AuthService.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, accessToken string) (*domain.Identity, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, domain.NewAuthError(MsgAccessTokenRequired, nil)
	}

	claims, err := s.tokens.ValidateToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, domain.NewAuthError(MsgTokenExpired, err)
		}
		return nil, domain.NewAuthError(MsgInvalidToken, err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.NewAuthError(MsgInvalidToken, err)
		}
		return nil, domain.NewInternalError("failed to look up user", err)
	}

	identity := user.Identity()
	return &identity, nil
}

func (s *AuthServiceImpl) issue(ctx context.Context, user *domain.User) (*AuthResult, error) {
	access, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, domain.NewInternalError("failed to generate access token", err)
	}

	refresh, err := s.tokens.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, domain.NewInternalError("failed to generate refresh token", err)
	}

	return &AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user.Identity(),
	}, nil
}

func (s *AuthServiceImpl) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("timing-equalizer-password")
		if err != nil {
			s.logger.Warn("failed to prepare dummy password hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
