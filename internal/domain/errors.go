// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error carries exactly one of these so the HTTP layer can
// choose a status code with errors.Is.
var (
	// ErrValidation marks malformed or missing client input.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized marks failed authentication: bad credentials or tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound marks a missing resource, including resources owned by
	// another user.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness clash such as a registered email.
	ErrConflict = errors.New("conflict")

	// ErrInternal marks an unexpected failure.
	ErrInternal = errors.New("internal error")
)

// Error is a classified failure with a message that is safe to show clients.
// Err optionally holds the underlying cause for logging.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewValidationError reports invalid client input.
func NewValidationError(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

// NewAuthError reports an authentication failure; cause may be nil.
func NewAuthError(message string, cause error) *Error {
	return &Error{Kind: ErrUnauthorized, Message: message, Err: cause}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// NewConflictError reports a uniqueness clash; cause may be nil.
func NewConflictError(message string, cause error) *Error {
	return &Error{Kind: ErrConflict, Message: message, Err: cause}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(message string, cause error) *Error {
	return &Error{Kind: ErrInternal, Message: message, Err: cause}
}

// PublicMessage returns the client-safe message carried by err, if any.
func PublicMessage(err error) (string, bool) {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message, true
	}
	return "", false
}
