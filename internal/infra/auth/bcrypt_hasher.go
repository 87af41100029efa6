// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"safepost/config"
	domainerrors "safepost/internal/domain/errors"
	"safepost/internal/domain/service"
)

const (
	// minBcryptCost is the floor for the adaptive hashing work factor.
	// Anything weaker is silently raised to this value.
	minBcryptCost     = 10
	defaultBcryptCost = 12

	defaultMinPasswordLength = 8
	defaultMaxPasswordLength = 128
)

// forbiddenPasswordWords are rejected as substrings regardless of the rest of
// the policy. Lowercase; matching is case-insensitive.
var forbiddenPasswordWords = []string{
	"password",
	"admin",
	"qwerty",
	"123456",
}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength *config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher. The work factor and
// strength policy come from configuration; missing values fall back to
// defaults, and the cost never drops below minBcryptCost.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := defaultBcryptCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		cost = cfg.Auth.BcryptCost
	}
	if cost < minBcryptCost {
		cost = minBcryptCost
	}

	var strength *config.PasswordStrengthConfig
	if cfg != nil {
		strength = cfg.PasswordStrength
	}

	return &bcryptHasher{cost: cost, strength: strength}
}

// NewBcryptHasherWithCost creates a hasher with an explicit work factor.
// Intended for tests, where a low cost keeps hashing fast.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks the plaintext against the configured policy.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	minLength := defaultMinPasswordLength
	maxLength := defaultMaxPasswordLength
	requireUpper, requireLower, requireNumbers, requireSpecial := true, true, true, true

	if h.strength != nil {
		if h.strength.MinLength > 0 {
			minLength = h.strength.MinLength
		}
		if h.strength.MaxLength > 0 {
			maxLength = h.strength.MaxLength
		}
		requireUpper = h.strength.RequireUppercase
		requireLower = h.strength.RequireLowercase
		requireNumbers = h.strength.RequireNumbers
		requireSpecial = h.strength.RequireSpecial
	}

	if len(password) < minLength {
		return domainerrors.ErrPasswordStrength.WrapMessage(
			"password must be at least " + strconv.Itoa(minLength) + " characters long")
	}
	if len(password) > maxLength {
		return domainerrors.ErrPasswordStrength.WrapMessage(
			"password must be at most " + strconv.Itoa(maxLength) + " characters long")
	}
	if requireLower && !h.hasLowercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage(
			"password must contain at least one lowercase letter")
	}
	if requireUpper && !h.hasUppercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage(
			"password must contain at least one uppercase letter")
	}
	if requireNumbers && !h.hasNumbers(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage(
			"password must contain at least one number")
	}
	if requireSpecial && !h.hasSpecialChars(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage(
			"password must contain at least one special character")
	}
	if h.containsForbiddenWords(password, forbiddenPasswordWords) {
		return domainerrors.ErrPasswordForbiddenWords.WrapMessage(
			"password contains forbidden words")
	}

	return nil
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsUpper)
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLower)
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (h *bcryptHasher) containsForbiddenWords(password string, words []string) bool {
	lowered := strings.ToLower(password)
	for _, word := range words {
		if strings.Contains(lowered, word) {
			return true
		}
	}

	return false
}
