// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"safepost/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput defines the data required to update a user's own profile.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	Name        *string
	Bio         *string
	Location    *string
	AvatarURL   *string
	TwitterURL  *string
	GithubURL   *string
	LinkedinURL *string
	WebsiteURL  *string
}

// ProfileUsecase defines the interface for public-profile business operations.
type ProfileUsecase interface {
	// GetPublicProfile returns a user's public profile, including the derived
	// published-post count.
	GetPublicProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile updates the actor's own profile and returns the result.
	UpdateProfile(ctx context.Context, actor *Actor, input *UpdateProfileInput) (*entity.User, error)
}
