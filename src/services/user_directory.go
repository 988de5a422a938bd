package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/khabaroff/jwt-auth-web/src/models"
)

// UserDirectoryClient reads the user collection from the backend API
type UserDirectoryClient struct {
	api apiClient
}

// NewUserDirectoryClient creates a client for {baseURL}/admin/users
func NewUserDirectoryClient(baseURL string, timeout time.Duration) *UserDirectoryClient {
	return &UserDirectoryClient{api: newAPIClient(baseURL, timeout)}
}

// ListUsers fetches every user record in server order (GET /admin/users).
// token is the caller's upstream bearer token.
func (c *UserDirectoryClient) ListUsers(ctx context.Context, token string) ([]models.UserRecord, error) {
	var result struct {
		Users []models.UserRecord `json:"users"`
	}
	if err := c.api.do(ctx, http.MethodGet, "/admin/users", token, nil, &result); err != nil {
		return nil, err
	}
	if result.Users == nil {
		result.Users = []models.UserRecord{}
	}
	return result.Users, nil
}

// Ping checks that the API answers at all; any HTTP response counts as reachable
func (c *UserDirectoryClient) Ping(ctx context.Context) error {
	err := c.api.do(ctx, http.MethodGet, "/admin/users", "", nil, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return nil
	}
	return err
}
