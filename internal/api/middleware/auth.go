package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fountainmap/fountain-finder/internal/core/ports"
)

// ContextKeyUserID is the echo context key under which the authenticated
// user id is stored.
const ContextKeyUserID = "user_id"

// Auth validates the bearer token and injects the user id into the context.
// Requests with a missing, malformed, or invalid token are rejected with 401.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := bearerUserID(c, tokens)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized to access this route")
			}
			c.Set(ContextKeyUserID, userID)
			return next(c)
		}
	}
}

// OptionalAuth attaches the user id when a valid bearer token is present and
// lets the request through with no identity otherwise. It consumes the same
// validation primitive as Auth; only the failure reaction differs.
func OptionalAuth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, ok := bearerUserID(c, tokens); ok {
				c.Set(ContextKeyUserID, userID)
			}
			return next(c)
		}
	}
}

// bearerUserID extracts and validates the Authorization header, returning
// the embedded user id. Validation fails closed.
func bearerUserID(c echo.Context, tokens ports.TokenService) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	userID, err := tokens.Validate(parts[1])
	if err != nil || userID == "" {
		return "", false
	}
	return userID, true
}
