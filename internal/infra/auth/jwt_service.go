// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"safepost/config"
	"safepost/internal/domain/entity"
	"safepost/internal/domain/service"
)

const (
	// standardTokenTTL is the bearer token lifetime for a normal login.
	standardTokenTTL = 24 * time.Hour
	// rememberMeTokenTTL is the lifetime when the client asked to stay signed in.
	rememberMeTokenTTL = 30 * 24 * time.Hour

	// minSecretBytes is the minimum signing secret size: 256 bits for HMAC-SHA256.
	minSecretBytes = 32

	roleClaim = "role"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Tokens are signed with HMAC-SHA256 and carry {sub, role, iat, exp}; there is
// no refresh flow and no server-side revocation.
type jwtService struct {
	secret []byte
	now    func() time.Time // Injected clock; time.Now outside tests.
}

// NewJWTService is the constructor for jwtService. It fails fast when the
// configured signing secret is missing or weaker than 256 bits, so a
// misconfigured process never signs a single token.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	secret := strings.TrimSpace(cfg.SecretKey.Signing)
	if secret == "" {
		return nil, errors.New("token signing secret must be provided")
	}
	if len(secret) < minSecretBytes {
		return nil, errors.Errorf("token signing secret must be at least %d bytes, got %d", minSecretBytes, len(secret))
	}

	return &jwtService{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

// Issue creates a signed bearer token for the given user.
func (s *jwtService) Issue(userID uuid.UUID, role entity.Role, rememberMe bool) (string, int64, error) {
	ttl := standardTokenTTL
	if rememberMe {
		ttl = rememberMeTokenTTL
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":     userID.String(),
		roleClaim: role.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, errors.Wrap(err, "failed to sign token")
	}

	return signed, int64(ttl / time.Second), nil
}

// Parse verifies the signature and expiry of a token string.
// Expired and malformed tokens yield distinct errors; everything else about
// the failure stays internal.
func (s *jwtService) Parse(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect; anything else is a
		// forged or foreign token.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, service.ErrTokenExpired
		}

		return nil, service.ErrTokenMalformed
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, service.ErrTokenMalformed
	}

	return s.toClaims(mapClaims)
}

// toClaims converts verified raw claims into the typed domain form.
func (s *jwtService) toClaims(mapClaims jwt.MapClaims) (*service.Claims, error) {
	subject, err := mapClaims.GetSubject()
	if err != nil {
		return nil, service.ErrTokenMalformed
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, service.ErrTokenMalformed
	}

	roleStr, _ := mapClaims[roleClaim].(string)
	role := entity.Role(roleStr)
	if !role.IsValid() {
		return nil, service.ErrTokenMalformed
	}

	issuedAt, err := mapClaims.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return nil, service.ErrTokenMalformed
	}
	expiresAt, err := mapClaims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return nil, service.ErrTokenMalformed
	}

	return &service.Claims{
		UserID:    userID,
		Role:      role,
		IssuedAt:  issuedAt.Time,
		ExpiresAt: expiresAt.Time,
	}, nil
}
