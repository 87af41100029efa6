package service

import (
	"errors"
	"time"

	"safepost/internal/domain/entity"

	"github.com/google/uuid"
)

// Token validation failures. Parse keeps the two cases distinct so callers can
// offer different UX (silent re-login prompt vs hard error); the HTTP gate
// collapses both into the same anonymous/401 outcome.
var (
	// ErrTokenExpired is returned when a structurally valid token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed is returned when the token structure or signature is invalid.
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims is the verified payload of a bearer token.
type Claims struct {
	UserID    uuid.UUID // Subject: the stable account ID the token was issued for.
	Role      entity.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService defines the interface for issuing and validating bearer tokens.
// Tokens are stateless: there is no server-side session record and no
// revocation; a new token requires a new successful authentication.
type TokenService interface {
	// Issue creates a signed token for the user. The lifetime is 24 hours, or
	// 30 days when rememberMe is set. expiresIn is the lifetime in seconds,
	// suitable for returning to clients verbatim.
	Issue(userID uuid.UUID, role entity.Role, rememberMe bool) (token string, expiresIn int64, err error)

	// Parse verifies the signature and expiry of a token string and returns
	// its claims. It is a pure function: parsing the same string twice yields
	// identical claims.
	Parse(tokenString string) (*Claims, error)
}
