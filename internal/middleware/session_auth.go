package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/sajibdev/chirpnet/backend/internal/errs"
	"github.com/sajibdev/chirpnet/backend/internal/services"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "jwt"

// UserContextKey is where the resolved user is stored on the request
// context for downstream handlers.
const UserContextKey = "user"

// SessionAuth resolves the session cookie to a user record once per
// request and stores it on the context. Requests without a valid,
// unexpired, correctly signed token are rejected before any handler runs.
func SessionAuth(auth *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return errs.HTTP(errs.ErrUnauthenticated)
			}

			user, err := auth.Authenticate(c.Request().Context(), cookie.Value)
			if err != nil {
				return errs.HTTP(err)
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
