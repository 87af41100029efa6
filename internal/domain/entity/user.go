// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. It carries the credential hash and
// the public profile fields; a plaintext password never appears on the entity.
type User struct {
	ID           uuid.UUID // The unique, stable identifier for the account.
	Email        string    // The login identifier; unique across the system.
	PasswordHash string    // bcrypt hash of the password.
	Name         string    // The user's display name.
	Role         Role      // Either RoleUser or RoleAdmin.
	CreatedAt    time.Time // Timestamp of when this account was registered.

	// Public profile fields, editable through the profile update flow.
	Bio                string
	Location           string
	AvatarURL          string
	AvatarFilename     string
	TwitterURL         string
	GithubURL          string
	LinkedinURL        string
	WebsiteURL         string
	ProfileCompletedAt *time.Time // Set the first time the profile is filled in.

	// PostCount is derived when loading profiles; it is not a stored column.
	PostCount int
}
