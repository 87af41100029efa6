package context

import (
	"safepost/internal/usecase"

	"github.com/labstack/echo/v4"
)

// KeyActor is the key for storing the authenticated caller in echo.Context.
// It is set by the authentication middleware after token verification.
const KeyActor ContextKey = "actor"

// GetActor extracts the authenticated caller from echo.Context.
// Returns nil for anonymous requests.
func GetActor(c echo.Context) *usecase.Actor {
	if actor, ok := c.Get(string(KeyActor)).(*usecase.Actor); ok {
		return actor
	}

	return nil
}

// SetActor attaches the authenticated caller to echo.Context.
func SetActor(c echo.Context, actor *usecase.Actor) {
	c.Set(string(KeyActor), actor)
}
