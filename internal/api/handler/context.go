package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fountainmap/fountain-finder/internal/api/middleware"
)

// ctxUserID extracts the user id injected by the Auth middleware. Its
// presence proves the middleware ran; handlers behind strict auth fail fast
// with 401 when it is missing.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextKeyUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Not authorized to access this route")
	}
	return userID, nil
}
