// Package entity contains the core business objects of the project.
package entity

// Role represents the access level of a user account.
type Role string

const (
	// RoleUser indicates a regular author account.
	RoleUser Role = "USER"
	// RoleAdmin indicates an administrator with moderation privileges.
	RoleAdmin Role = "ADMIN"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role grants the admin override on
// ownership-gated operations.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
