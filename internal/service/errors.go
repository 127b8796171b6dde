// Package service provides the application-level auth and task use cases.
package service

import (
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Client-facing messages. They are part of the API contract.
const (
	MsgCredentialsRequired  = "Email and password are required"
	MsgInvalidEmail         = "Invalid email format"
	MsgPasswordTooLong      = "Password must be at most 72 bytes"
	MsgUserExists           = "User already exists"
	MsgInvalidCredentials   = "Invalid credentials"
	MsgRefreshTokenRequired = "Refresh token required"
	MsgInvalidRefreshToken  = "Invalid refresh token"
	MsgRefreshTokenExpired  = "Refresh token expired"
	MsgAccessTokenRequired  = "Access token required"
	MsgInvalidToken         = "Invalid token"
	MsgTokenExpired         = "Token expired"
	MsgTaskNotFound         = "Task not found"
	MsgInvalidPage          = "Page must be a positive integer"
	MsgInvalidLimit         = "Limit must be between 1 and 100"
	MsgInvalidStatus        = "Status must be 'completed' or 'pending'"
)

// taskError translates a task store failure into a classified error.
func taskError(err error, op string) error {
	if store.IsNotFoundError(err) {
		return domain.NewNotFoundError(MsgTaskNotFound)
	}
	return domain.NewInternalError("failed to "+op, err)
}
