package models

// SessionUser is the identity of the signed-in caller
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin returns true if the user holds the admin role
func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role.IsAdmin()
}
