package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for explicit error handling
// These errors allow callers to distinguish between different failure modes
// using errors.Is() instead of string matching

var (
	// ErrUnauthorized indicates the API rejected the caller's credentials
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken indicates the session token failed validation
	ErrInvalidToken = errors.New("invalid session token")

	// ErrSecretNotConfigured indicates the session signing secret is missing or too short
	ErrSecretNotConfigured = errors.New("session secret not configured")
)

// APIError is a non-2xx response from the backend API.
// Message holds the body's "message" field and may be empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap maps 401 and 403 responses onto ErrUnauthorized
func (e *APIError) Unwrap() error {
	if e.StatusCode == 401 || e.StatusCode == 403 {
		return ErrUnauthorized
	}
	return nil
}

// ServerMessage returns the server-supplied message carried by err, or fallback
func ServerMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
