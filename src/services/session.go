package services

import (
	"sync"

	"github.com/khabaroff/jwt-auth-web/src/models"
)

// AuthSession is the capability surface handed to views: the current
// user, the admin flag and a logout action. It is created per request.
type AuthSession struct {
	user     *models.SessionUser
	apiToken string

	logoutOnce sync.Once
	logout     func()
}

// NewAuthSession builds a session. user may be nil for anonymous callers.
// logout runs at most once, on the first Logout call.
func NewAuthSession(user *models.SessionUser, apiToken string, logout func()) *AuthSession {
	return &AuthSession{user: user, apiToken: apiToken, logout: logout}
}

// User returns the current user or nil
func (s *AuthSession) User() *models.SessionUser {
	if s == nil {
		return nil
	}
	return s.user
}

// IsAdmin is derived from the user's role
func (s *AuthSession) IsAdmin() bool {
	return s.User().IsAdmin()
}

// APIToken returns the upstream bearer token for API calls
func (s *AuthSession) APIToken() string {
	if s == nil {
		return ""
	}
	return s.apiToken
}

// Logout ends the session
func (s *AuthSession) Logout() {
	if s == nil {
		return
	}
	s.logoutOnce.Do(func() {
		if s.logout != nil {
			s.logout()
		}
	})
}
