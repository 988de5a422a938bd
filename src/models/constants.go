package models

// Role represents an account's authorization role as reported by the API
type Role string

const (
	// RoleUser is a regular registered account
	RoleUser Role = "user"
	// RoleAdmin grants access to the admin dashboard
	RoleAdmin Role = "admin"
)

// IsAdmin reports whether the role carries administrative access.
// Unknown and empty roles are treated as regular users.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
