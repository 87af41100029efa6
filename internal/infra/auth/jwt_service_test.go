package auth

import (
	"strings"
	"testing"
	"time"

	"safepost/config"
	"safepost/internal/domain/entity"
	"safepost/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Signing = "test_signing_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_IssueAndParse(t *testing.T) {
	tokenService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)
	require.NotNil(t, tokenService)

	userID := uuid.New()

	token, expiresIn, err := tokenService.Issue(userID, entity.RoleUser, false)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(86400), expiresIn)

	claims, err := tokenService.Parse(token)
	assert.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.RoleUser, claims.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt, time.Minute)
}

func TestJWTService_RememberMeLifetime(t *testing.T) {
	tokenService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	userID := uuid.New()

	token, expiresIn, err := tokenService.Issue(userID, entity.RoleAdmin, true)
	assert.NoError(t, err)
	assert.Equal(t, int64(2592000), expiresIn)

	claims, err := tokenService.Parse(token)
	assert.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAt, time.Minute)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	tokenService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	svc, ok := tokenService.(*jwtService)
	require.True(t, ok)

	token, _, err := tokenService.Issue(uuid.New(), entity.RoleUser, false)
	require.NoError(t, err)

	// Move the service clock past the standard lifetime.
	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	claims, err := tokenService.Parse(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_MalformedToken(t *testing.T) {
	tokenService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	claims, err := tokenService.Parse("clearly-not-a-jwt-token-format")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTService_TamperedToken(t *testing.T) {
	tokenService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	token, _, err := tokenService.Issue(uuid.New(), entity.RoleUser, false)
	require.NoError(t, err)

	// Flip a character in the payload segment; the signature no longer matches.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	claims, err := tokenService.Parse(tampered)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTService_ForeignSecret(t *testing.T) {
	tokenService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.Signing = "another_signing_secret_that_is_also_long_enough"
	otherService, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, _, err := otherService.Issue(uuid.New(), entity.RoleUser, false)
	require.NoError(t, err)

	claims, err := tokenService.Parse(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTService_ParseIsRepeatable(t *testing.T) {
	tokenService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	userID := uuid.New()
	token, _, err := tokenService.Issue(userID, entity.RoleUser, false)
	require.NoError(t, err)

	first, err := tokenService.Parse(token)
	require.NoError(t, err)
	second, err := tokenService.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestJWTService_WeakSecret(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Signing = "too-short"

	tokenService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, tokenService)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := &config.Config{}

	tokenService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, tokenService)
	assert.Contains(t, err.Error(), "signing secret must be provided")
}
