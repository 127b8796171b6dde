package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("a@x.com", "$2a$10$hash")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	identity := user.Identity()
	if identity.ID != user.ID || identity.Email != "a@x.com" {
		t.Errorf("Unexpected identity %+v", identity)
	}

	if _, err := NewUser("", "$2a$10$hash"); err == nil {
		t.Error("Expected error for empty email")
	}
	if _, err := NewUser("a@x.com", ""); err == nil {
		t.Error("Expected error for empty password hash")
	}
}
