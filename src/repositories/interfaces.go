package repositories

import (
	"context"

	"github.com/khabaroff/jwt-auth-web/src/models"
	"github.com/khabaroff/jwt-auth-web/src/services"
)

// UserDirectory defines read access to the backend's user collection
type UserDirectory interface {
	ListUsers(ctx context.Context, token string) ([]models.UserRecord, error)
}

// Authenticator forwards credentials to the backend
type Authenticator interface {
	Login(ctx context.Context, req services.LoginRequest) (*services.AuthResult, error)
	Register(ctx context.Context, req services.RegisterRequest) (*services.AuthResult, error)
}

// HealthChecker reports whether the backend API is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

var (
	_ UserDirectory = (*services.UserDirectoryClient)(nil)
	_ HealthChecker = (*services.UserDirectoryClient)(nil)
	_ Authenticator = (*services.AuthClient)(nil)
)
