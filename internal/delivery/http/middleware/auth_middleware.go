package middleware

import (
	"strings"

	deliverycontext "safepost/internal/delivery/context"
	"safepost/internal/domain/entity"
	domainerrors "safepost/internal/domain/errors"
	"safepost/internal/domain/service"
	"safepost/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves bearer tokens into an authenticated caller and
// provides the gates that protect restricted routes.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	identity usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, identity usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, identity: identity}
}

// Authenticate resolves the Authorization header, if any, into an Actor on
// the request context. It never rejects a request on its own: a missing,
// malformed or expired token, or a token whose account was deleted, simply
// leaves the request anonymous, so public routes stay reachable with a stale
// token. Access control is enforced separately by RequireAuth and RequireRole.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliverycontext.GetActor(c) != nil {
			return next(c)
		}

		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return next(c)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return next(c)
		}

		claims, err := m.tokenSvc.Parse(tokenString)
		if err != nil {
			// Invalid tokens fall back to anonymous rather than failing the
			// whole request.
			return next(c)
		}

		// Resolve the subject against the store: the actor carries the
		// account's current role, and a token that outlived its account
		// degrades to anonymous.
		actor, err := m.identity.ResolveIdentity(c.Request().Context(), claims.UserID)
		if err != nil {
			return next(c)
		}

		deliverycontext.SetActor(c, actor)

		return next(c)
	}
}

// RequireAuth rejects anonymous requests with a generic 401 body. It must be
// used after Authenticate. The body never reveals whether a token was absent,
// expired or invalid.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliverycontext.GetActor(c) == nil {
			return domainerrors.ErrUnauthenticated
		}

		return next(c)
	}
}

// RequireRole rejects callers whose role does not match. It must be used
// after Authenticate; an anonymous caller gets a 401 rather than a 403 so
// clients can distinguish "log in first" from "not allowed".
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := deliverycontext.GetActor(c)
			if actor == nil {
				return domainerrors.ErrUnauthenticated
			}

			if actor.Role != requiredRole {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}
