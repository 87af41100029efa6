package auth

import (
	"testing"

	"safepost/config"
	domainerrors "safepost/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("WrongPassword123!", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_MinimumCost(t *testing.T) {
	// A configured cost below the floor gets clamped.
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}
	hasher, ok := NewBcryptHasher(cfg).(*bcryptHasher)
	assert.True(t, ok)
	assert.Equal(t, minBcryptCost, hasher.cost)

	// No config at all falls back to the default work factor.
	hasher, ok = NewBcryptHasher(nil).(*bcryptHasher)
	assert.True(t, ok)
	assert.Equal(t, defaultBcryptCost, hasher.cost)
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	// Test valid passwords
	validPasswords := []string{
		"StrongPass123!",
		"MySecure@Pass1",
		"Complex#Secret9",
		"Valid$Phrase2026",
	}

	for _, password := range validPasswords {
		err := hasher.ValidatePasswordStrength(password)
		assert.NoError(t, err, "Expected no error for valid password: %s", password)
	}

	// Test invalid passwords with specific error cases
	testCases := []struct {
		password    string
		expectedErr string
	}{
		{"123", "must be at least 8 characters long"},
		{"PASSWORD123!", "must contain at least one lowercase letter"},
		{"password123!", "must contain at least one uppercase letter"},
		{"PassphraseABC!", "must contain at least one number"},
		{"Passphrase123", "must contain at least one special character"},
		{"Password123!", "contains forbidden words"},
		{"MyAdmin123!", "contains forbidden words"},
	}

	for _, tc := range testCases {
		err := hasher.ValidatePasswordStrength(tc.password)
		assert.Error(t, err, "Expected error for password: %s", tc.password)
		assert.Contains(t, err.Error(), tc.expectedErr, "Error message should contain: %s", tc.expectedErr)
	}
}

func TestBcryptHasher_ConfiguredPolicy(t *testing.T) {
	cfg := &config.Config{
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength: 4,
			MaxLength: 16,
		},
	}
	hasher := NewBcryptHasher(cfg)

	// Relaxed policy: no character-class requirements.
	assert.NoError(t, hasher.ValidatePasswordStrength("abcd"))

	// Length bounds still apply.
	err := hasher.ValidatePasswordStrength("abc")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 4 characters")

	err = hasher.ValidatePasswordStrength("abcdefghijklmnopq")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at most 16 characters")
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasherWithCost(customCost)

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Verify the hash uses the correct cost
	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_PasswordStrengthHelpers(t *testing.T) {
	hasher := &bcryptHasher{}

	// Test hasUppercase
	assert.True(t, hasher.hasUppercase("Passphrase"))
	assert.False(t, hasher.hasUppercase("passphrase"))

	// Test hasLowercase
	assert.True(t, hasher.hasLowercase("Passphrase"))
	assert.False(t, hasher.hasLowercase("PASSPHRASE"))

	// Test hasNumbers
	assert.True(t, hasher.hasNumbers("Passphrase123"))
	assert.False(t, hasher.hasNumbers("Passphrase"))

	// Test hasSpecialChars
	assert.True(t, hasher.hasSpecialChars("Passphrase!"))
	assert.False(t, hasher.hasSpecialChars("Passphrase"))

	// Test containsForbiddenWords
	forbiddenWords := []string{"password", "admin"}
	assert.True(t, hasher.containsForbiddenWords("MyPassword123", forbiddenWords))
	assert.True(t, hasher.containsForbiddenWords("AdminUser", forbiddenWords))
	assert.False(t, hasher.containsForbiddenWords("SecurePass123", forbiddenWords))
}

func TestBcryptHasher_EdgeCases(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	// Test empty password
	err := hasher.ValidatePasswordStrength("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be at least 8 characters long")

	// Forbidden-word failures surface as the dedicated sentinel.
	err = hasher.ValidatePasswordStrength("MyPassword123!")
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordForbiddenWords))

	// Test password with unicode characters
	unicodePassword := "Pässphräse123!"
	err = hasher.ValidatePasswordStrength(unicodePassword)
	assert.NoError(t, err)

	// Test password with only special characters
	specialOnlyPassword := "!@#$%^&*()"
	err = hasher.ValidatePasswordStrength(specialOnlyPassword)
	assert.Error(t, err)
}
