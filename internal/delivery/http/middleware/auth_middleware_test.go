package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "safepost/internal/delivery/context"
	"safepost/internal/domain/entity"
	domainerrors "safepost/internal/domain/errors"
	"safepost/internal/domain/service"
	mockservice "safepost/internal/mocks/service"
	mockusecase "safepost/internal/mocks/usecase"
	"safepost/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthTestContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func captureActor(captured **usecase.Actor) echo.HandlerFunc {
	return func(c echo.Context) error {
		*captured = deliverycontext.GetActor(c)

		return c.NoContent(http.StatusOK)
	}
}

func validClaims(userID uuid.UUID, role entity.Role) *service.Claims {
	return &service.Claims{
		UserID:    userID,
		Role:      role,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestAuthenticate_NoHeaderStaysAnonymous(t *testing.T) {
	tokenSvc := mockservice.NewMockTokenService(t)
	identity := mockusecase.NewMockAuthUsecase(t)
	mw := NewAuthMiddleware(tokenSvc, identity)

	c, rec := newAuthTestContext(t, "")

	var actor *usecase.Actor
	err := mw.Authenticate(captureActor(&actor))(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, actor)
	tokenSvc.AssertNotCalled(t, "Parse")
}

func TestAuthenticate_ValidTokenAttachesActor(t *testing.T) {
	userID := uuid.New()

	tokenSvc := mockservice.NewMockTokenService(t)
	tokenSvc.On("Parse", "good-token").Return(validClaims(userID, entity.RoleUser), nil).Once()

	identity := mockusecase.NewMockAuthUsecase(t)
	identity.On("ResolveIdentity", mock.Anything, userID).
		Return(&usecase.Actor{ID: userID, Role: entity.RoleAdmin}, nil).Once()

	mw := NewAuthMiddleware(tokenSvc, identity)
	c, rec := newAuthTestContext(t, "Bearer good-token")

	var actor *usecase.Actor
	err := mw.Authenticate(captureActor(&actor))(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, actor)
	assert.Equal(t, userID, actor.ID)
	// The resolved role wins over the role baked into the token.
	assert.Equal(t, entity.RoleAdmin, actor.Role)
}

func TestAuthenticate_DeletedAccountFallsBackToAnonymous(t *testing.T) {
	userID := uuid.New()

	tokenSvc := mockservice.NewMockTokenService(t)
	tokenSvc.On("Parse", "orphan-token").Return(validClaims(userID, entity.RoleUser), nil).Once()

	identity := mockusecase.NewMockAuthUsecase(t)
	identity.On("ResolveIdentity", mock.Anything, userID).
		Return(nil, domainerrors.ErrUnauthenticated).Once()

	mw := NewAuthMiddleware(tokenSvc, identity)
	c, rec := newAuthTestContext(t, "Bearer orphan-token")

	var actor *usecase.Actor
	err := mw.Authenticate(captureActor(&actor))(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "public routes stay reachable")
	assert.Nil(t, actor)
}

func TestAuthenticate_InvalidTokenFallsBackToAnonymous(t *testing.T) {
	cases := []struct {
		name   string
		header string
		parsed bool
		err    error
	}{
		{name: "expired token", header: "Bearer expired-token", parsed: true, err: service.ErrTokenExpired},
		{name: "malformed token", header: "Bearer garbage", parsed: true, err: service.ErrTokenMalformed},
		{name: "missing bearer prefix", header: "Basic dXNlcjpwYXNz", parsed: false},
		{name: "empty bearer token", header: "Bearer ", parsed: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokenSvc := mockservice.NewMockTokenService(t)
			if tc.parsed {
				tokenSvc.On("Parse", tc.header[len("Bearer "):]).Return(nil, tc.err).Once()
			}
			identity := mockusecase.NewMockAuthUsecase(t)

			mw := NewAuthMiddleware(tokenSvc, identity)
			c, rec := newAuthTestContext(t, tc.header)

			var actor *usecase.Actor
			err := mw.Authenticate(captureActor(&actor))(c)

			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code, "request must still reach the handler")
			assert.Nil(t, actor)
			identity.AssertNotCalled(t, "ResolveIdentity")
		})
	}
}

func TestAuthenticate_SkipsWhenIdentityAlreadyAttached(t *testing.T) {
	tokenSvc := mockservice.NewMockTokenService(t)
	identity := mockusecase.NewMockAuthUsecase(t)
	mw := NewAuthMiddleware(tokenSvc, identity)

	attached := &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}
	c, _ := newAuthTestContext(t, "Bearer some-token")
	deliverycontext.SetActor(c, attached)

	var actor *usecase.Actor
	err := mw.Authenticate(captureActor(&actor))(c)

	require.NoError(t, err)
	assert.Same(t, attached, actor)
	tokenSvc.AssertNotCalled(t, "Parse")
}

func TestRequireAuth_AnonymousRejected(t *testing.T) {
	tokenSvc := mockservice.NewMockTokenService(t)
	identity := mockusecase.NewMockAuthUsecase(t)
	mw := NewAuthMiddleware(tokenSvc, identity)

	c, _ := newAuthTestContext(t, "")

	err := mw.RequireAuth(func(c echo.Context) error {
		t.Fatal("handler must not run for anonymous callers")

		return nil
	})(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestRequireAuth_AuthenticatedPassesThrough(t *testing.T) {
	tokenSvc := mockservice.NewMockTokenService(t)
	identity := mockusecase.NewMockAuthUsecase(t)
	mw := NewAuthMiddleware(tokenSvc, identity)

	c, rec := newAuthTestContext(t, "")
	deliverycontext.SetActor(c, &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser})

	err := mw.RequireAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		actor   *usecase.Actor
		wantErr error
	}{
		{name: "anonymous gets 401", actor: nil, wantErr: domainerrors.ErrUnauthenticated},
		{name: "wrong role gets 403", actor: &usecase.Actor{ID: uuid.New(), Role: entity.RoleUser}, wantErr: domainerrors.ErrForbidden},
		{name: "matching role passes", actor: &usecase.Actor{ID: uuid.New(), Role: entity.RoleAdmin}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokenSvc := mockservice.NewMockTokenService(t)
			identity := mockusecase.NewMockAuthUsecase(t)
			mw := NewAuthMiddleware(tokenSvc, identity)

			c, _ := newAuthTestContext(t, "")
			if tc.actor != nil {
				deliverycontext.SetActor(c, tc.actor)
			}

			err := mw.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
