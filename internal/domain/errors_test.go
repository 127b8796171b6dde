package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("db down")

	tests := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{"validation", NewValidationError("Title is required"), ErrValidation, "Title is required"},
		{"auth", NewAuthError("Invalid token", cause), ErrUnauthorized, "Invalid token"},
		{"not found", NewNotFoundError("Task not found"), ErrNotFound, "Task not found"},
		{"conflict", NewConflictError("User already exists", nil), ErrConflict, "User already exists"},
		{"internal", NewInternalError("failed to list tasks", cause), ErrInternal, "failed to list tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service layer: %w", tt.err)

			assert.ErrorIs(t, wrapped, tt.kind)
			msg, ok := PublicMessage(wrapped)
			assert.True(t, ok)
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("db down")
	err := NewInternalError("failed to create task", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, "failed to create task: db down", err.Error())
}

func TestPublicMessageWithoutDomainError(t *testing.T) {
	_, ok := PublicMessage(errors.New("plain"))
	assert.False(t, ok)
}
