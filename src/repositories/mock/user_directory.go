package mock

import (
	"context"
	"sync"

	"github.com/khabaroff/jwt-auth-web/src/models"
	"github.com/khabaroff/jwt-auth-web/src/repositories"
)

// UserDirectory is a mock implementation of repositories.UserDirectory
type UserDirectory struct {
	// Function stubs that can be overridden in tests
	ListUsersFunc func(ctx context.Context, token string) ([]models.UserRecord, error)

	mu    sync.Mutex
	calls []string
}

// NewUserDirectory creates a new mock user directory
func NewUserDirectory() *UserDirectory {
	return &UserDirectory{}
}

func (m *UserDirectory) ListUsers(ctx context.Context, token string) ([]models.UserRecord, error) {
	m.mu.Lock()
	m.calls = append(m.calls, token)
	m.mu.Unlock()
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, token)
	}
	return []models.UserRecord{}, nil
}

// Calls returns the tokens passed to ListUsers, in call order
func (m *UserDirectory) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Ensure UserDirectory implements the interface
var _ repositories.UserDirectory = (*UserDirectory)(nil)
