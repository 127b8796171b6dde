package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxPasswordBytes is bcrypt's input limit.
const MaxPasswordBytes = 72

// User represents a registered account. Users are created by registration and
// are never mutated or deleted afterwards.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUser creates a User with a fresh id for an already hashed password.
func NewUser(email, passwordHash string) (*User, error) {
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks that the user can be persisted.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("User ID cannot be empty")
	}
	if strings.TrimSpace(u.Email) == "" {
		return NewValidationError("Email cannot be empty")
	}
	if u.PasswordHash == "" {
		return NewValidationError("Password hash cannot be empty")
	}
	return nil
}

// Identity is the authenticated caller resolved from an access token.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Identity returns the public projection of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}
