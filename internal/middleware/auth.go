package middleware // middleware contains reusable HTTP middleware functions

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bookmark-keeper/internal/model"
	"github.com/iliyamo/bookmark-keeper/internal/repository"
	"github.com/iliyamo/bookmark-keeper/internal/utils"
)

// UserKey is the context key under which the guard stores the resolved
// user. Handlers read it back through CurrentUser.
const UserKey = "user"

// UserResolver resolves a token subject to a persisted user. The user
// repository satisfies it; tests substitute a fake.
type UserResolver interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access
// token, resolves its subject to a live user row and stores the user
// in the request context. A token whose user has since been deleted is
// rejected like any other invalid token, so no handler ever runs with
// a dangling identity. This middleware wraps every protected route.
func JWTAuth(secret string, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header is "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			uid, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			u, err := users.GetByID(c.Request().Context(), uid)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
			}

			c.Set(UserKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by JWTAuth. The boolean is false
// when the middleware did not run, which on a guarded route means a
// wiring bug rather than a client error.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(UserKey).(model.User)
	return u, ok
}
