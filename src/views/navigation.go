// Package views holds the page view models. Each view is built per request
// from an explicit session and renders as plain data for the templates.
package views

import (
	"errors"

	"github.com/khabaroff/jwt-auth-web/src/models"
)

// Routes reachable through navigation actions
const (
	RouteHome      = "/"
	RouteLogin     = "/login"
	RouteRegister  = "/register"
	RouteDashboard = "/dashboard"
	RouteAdmin     = "/admin"
)

// ErrAdminRequired is returned when a non-admin requests an admin-only transition
var ErrAdminRequired = errors.New("admin access required")

// Session is the capability surface a view consumes
type Session interface {
	User() *models.SessionUser
	IsAdmin() bool
	Logout()
}

// Navigator performs route transitions
type Navigator interface {
	Navigate(route string)
}

// logout ends the session then moves to the login page
func logout(session Session, nav Navigator) {
	session.Logout()
	nav.Navigate(RouteLogin)
}

// Profile is the display form of the session user; absent fields are empty
type Profile struct {
	ID    string
	Name  string
	Email string
	Role  string
}

func profileOf(session Session) Profile {
	u := session.User()
	if u == nil {
		return Profile{}
	}
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}
