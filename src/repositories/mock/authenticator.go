package mock

import (
	"context"

	"github.com/khabaroff/jwt-auth-web/src/repositories"
	"github.com/khabaroff/jwt-auth-web/src/services"
)

// Authenticator is a mock implementation of repositories.Authenticator
type Authenticator struct {
	// Function stubs that can be overridden in tests
	LoginFunc    func(ctx context.Context, req services.LoginRequest) (*services.AuthResult, error)
	RegisterFunc func(ctx context.Context, req services.RegisterRequest) (*services.AuthResult, error)

	// Call tracking
	Calls map[string][]interface{}
}

// NewAuthenticator creates a new mock authenticator
func NewAuthenticator() *Authenticator {
	return &Authenticator{
		Calls: make(map[string][]interface{}),
	}
}

func (m *Authenticator) Login(ctx context.Context, req services.LoginRequest) (*services.AuthResult, error) {
	m.Calls["Login"] = append(m.Calls["Login"], req)
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, services.ErrUnauthorized
}

func (m *Authenticator) Register(ctx context.Context, req services.RegisterRequest) (*services.AuthResult, error) {
	m.Calls["Register"] = append(m.Calls["Register"], req)
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, services.ErrUnauthorized
}

// HealthChecker is a mock implementation of repositories.HealthChecker
type HealthChecker struct {
	Err error
}

func (m *HealthChecker) Ping(ctx context.Context) error {
	return m.Err
}

// Ensure mocks implement the interfaces
var (
	_ repositories.Authenticator = (*Authenticator)(nil)
	_ repositories.HealthChecker = (*HealthChecker)(nil)
)
