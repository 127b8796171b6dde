package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

const minSecretLength = 32

// hmacJWTService is an implementation of JWTService using HMAC-SHA256 signing.
type hmacJWTService struct {
	accessKey            []byte
	refreshKey           []byte
	tokenLifetime        time.Duration
	refreshTokenLifetime time.Duration
	timeFunc             func() time.Time // Injectable for testing
}

// Option customizes the JWT service.
type Option func(*hmacJWTService)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(s *hmacJWTService) {
		s.timeFunc = now
	}
}

// tokenKind selects the key, lifetime and errors for one kind of token.
type tokenKind struct {
	name       string
	expiredErr error
	invalidErr error
}

var (
	accessKind  = tokenKind{name: "access", expiredErr: ErrExpiredToken, invalidErr: ErrInvalidToken}
	refreshKind = tokenKind{name: "refresh", expiredErr: ErrExpiredRefreshToken, invalidErr: ErrInvalidRefreshToken}
)

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA256 signing.
func NewJWTService(cfg config.AuthConfig, opts ...Option) (JWTService, error) {
	if len(cfg.AccessTokenSecret) < minSecretLength || len(cfg.RefreshTokenSecret) < minSecretLength {
		return nil, fmt.Errorf("token secrets must be at least %d characters", minSecretLength)
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("access and refresh token secrets must differ")
	}
	if cfg.AccessTokenLifetime <= 0 || cfg.RefreshTokenLifetime <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive")
	}

	s := &hmacJWTService{
		accessKey:            []byte(cfg.AccessTokenSecret),
		refreshKey:           []byte(cfg.RefreshTokenSecret),
		tokenLifetime:        cfg.AccessTokenLifetime,
		refreshTokenLifetime: cfg.RefreshTokenLifetime,
		timeFunc:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GenerateToken creates a signed JWT access token.
func (s *hmacJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.sign(ctx, accessKind, s.accessKey, userID, s.tokenLifetime)
}

// ValidateToken validates a JWT access token and returns the claims if valid.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.parse(ctx, accessKind, s.accessKey, tokenString)
}

// GenerateRefreshToken creates a signed JWT refresh token.
func (s *hmacJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.sign(ctx, refreshKind, s.refreshKey, userID, s.refreshTokenLifetime)
}

// ValidateRefreshToken validates a JWT refresh token and returns the claims if valid.
func (s *hmacJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.parse(ctx, refreshKind, s.refreshKey, tokenString)
}

func (s *hmacJWTService) sign(
	ctx context.Context,
	kind tokenKind,
	key []byte,
	userID uuid.UUID,
	lifetime time.Duration,
) (string, error) {
	now := s.timeFunc()

	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		ID:        uuid.New().String(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign JWT",
			"error", err,
			"user_id", userID,
			"token_type", kind.name)
		return "", fmt.Errorf("failed to sign %s token with HMAC-SHA256: %w", kind.name, err)
	}

	return signed, nil
}

func (s *hmacJWTService) parse(ctx context.Context, kind tokenKind, key []byte, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug("token validation failed: token expired", "token_type", kind.name)
			return nil, kind.expiredErr
		}
		log.Debug("token validation failed",
			"error", err,
			"token_type", kind.name)
		return nil, kind.invalidErr
	}

	registered, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || registered.ExpiresAt == nil {
		log.Debug("token validation failed: invalid claims", "token_type", kind.name)
		return nil, kind.invalidErr
	}

	userID, err := uuid.Parse(registered.Subject)
	if err != nil {
		log.Debug("token validation failed: subject is not a user id", "token_type", kind.name)
		return nil, kind.invalidErr
	}

	claims := &Claims{
		UserID:    userID,
		ExpiresAt: registered.ExpiresAt.Time,
		ID:        registered.ID,
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}

	return claims, nil
}
