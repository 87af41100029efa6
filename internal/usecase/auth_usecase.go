// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"safepost/internal/domain/entity"

	"github.com/google/uuid"
)

// Actor identifies the authenticated caller of an operation, as resolved from
// a verified bearer token. Operations that accept a *Actor treat nil as an
// anonymous caller.
type Actor struct {
	ID   uuid.UUID
	Role entity.Role
}

// IsAdmin reports whether the actor has moderation privileges.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role.IsAdmin()
}

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// --- Output DTOs ---

// AuthOutput returns the issued token after a successful login or registration.
type AuthOutput struct {
	Token     string
	ExpiresIn int64 // Token lifetime in seconds.
	User      *entity.User
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new account and logs it in.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and issues a token. Unknown email and wrong
	// password produce the same error.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GetProfile returns the account behind a verified token subject.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// ResolveIdentity maps a verified token subject to a live account. The
	// returned actor carries the account's current role, not the role baked
	// into the token. A deleted account resolves to ErrUnauthenticated.
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (*Actor, error)
}
