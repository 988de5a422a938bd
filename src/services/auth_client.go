package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/khabaroff/jwt-auth-web/src/models"
)

// AuthResult is the API's answer to a successful login or registration
type AuthResult struct {
	Token string             `json:"token"`
	User  models.SessionUser `json:"user"`
}

// LoginRequest is the body forwarded to POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body forwarded to POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthClient forwards credentials to the backend API, which owns
// password verification and token issuance
type AuthClient struct {
	api apiClient
}

// NewAuthClient creates a new auth API client
func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{api: newAPIClient(baseURL, timeout)}
}

// Login exchanges credentials for an API token
func (c *AuthClient) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	return c.post(ctx, "/auth/login", req)
}

// Register creates an account and returns its API token
func (c *AuthClient) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	return c.post(ctx, "/auth/register", req)
}

func (c *AuthClient) post(ctx context.Context, path string, body interface{}) (*AuthResult, error) {
	var result AuthResult
	if err := c.api.do(ctx, http.MethodPost, path, "", body, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &APIError{StatusCode: http.StatusBadGateway, Message: "API response did not include a token"}
	}
	return &result, nil
}
