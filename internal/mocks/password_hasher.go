package mocks

import (
	"errors"
	"strings"
	"sync"
)

const plainHashPrefix = "hashed:"

// ErrPasswordMismatch is returned by MockPasswordHasher.Compare on mismatch.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordHasher implements auth.PasswordHasher without bcrypt's cost.
// By default Hash prefixes the password and Compare checks the prefix form.
type MockPasswordHasher struct {
	// HashFn allows test cases to mock the Hash behavior
	HashFn func(password string) (string, error)

	// CompareFn allows test cases to mock the Compare behavior
	CompareFn func(hashedPassword, password string) error

	mu           sync.Mutex
	compareCalls int
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return plainHashPrefix + password, nil
}

// Compare implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.mu.Lock()
	m.compareCalls++
	m.mu.Unlock()

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if !strings.HasPrefix(hashedPassword, plainHashPrefix) || hashedPassword != plainHashPrefix+password {
		return ErrPasswordMismatch
	}
	return nil
}

// CompareCalls returns how many times Compare ran.
func (m *MockPasswordHasher) CompareCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.compareCalls
}
