package handlers

import (
	"github.com/labstack/echo/v4"
	appmw "github.com/sajibdev/chirpnet/backend/internal/middleware"
	"github.com/sajibdev/chirpnet/backend/internal/models"
)

// currentUser returns the actor resolved by the session middleware.
// Only reachable behind SessionAuth, so the value is always present.
func currentUser(c echo.Context) *models.User {
	user, _ := c.Get(appmw.UserContextKey).(*models.User)
	return user
}
