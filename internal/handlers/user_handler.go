package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sajibdev/chirpnet/backend/internal/errs"
	"github.com/sajibdev/chirpnet/backend/internal/models"
	"github.com/sajibdev/chirpnet/backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler handles profile, follow and search HTTP requests.
type UserHandler struct {
	userService *services.UserService
	authHandler *AuthHandler
}

// NewUserHandler creates a new UserHandler. The auth handler is needed
// to clear the session cookie after account deletion.
func NewUserHandler(userService *services.UserService, authHandler *AuthHandler) *UserHandler {
	return &UserHandler{userService: userService, authHandler: authHandler}
}

// RegisterUserRoutes registers user routes. GET /:id is open; everything
// else requires a session.
func (h *UserHandler) RegisterUserRoutes(open, protected *echo.Group) {
	open.GET("/:id", h.GetUserByID)
	protected.GET("/profile/:username", h.GetProfile)
	protected.GET("/suggested", h.GetSuggested)
	protected.POST("/follow/:id", h.ToggleFollow)
	protected.POST("/update", h.UpdateProfile)
	protected.POST("/search", h.SearchUsers)
	protected.DELETE("/delete", h.DeleteAccount)
}

// GetProfile returns a user's public profile by username.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userService.GetProfile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUserByID returns a user record by id. Open route.
func (h *UserHandler) GetUserByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	user, err := h.userService.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ToggleFollow follows or unfollows the target user.
func (h *UserHandler) ToggleFollow(c echo.Context) error {
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	result, err := h.userService.ToggleFollow(c.Request().Context(), currentUser(c), targetID)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetSuggested returns a short sample of users worth following.
func (h *UserHandler) GetSuggested(c echo.Context) error {
	users, err := h.userService.SuggestUsers(c.Request().Context(), currentUser(c))
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateProfile applies profile changes for the authenticated user.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), currentUser(c), req)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, user)
}

// SearchUsers finds users by username substring.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	var req models.SearchUsersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	users, err := h.userService.SearchUsers(c.Request().Context(), req.Query)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteAccount removes the authenticated user and clears the session.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	if err := h.userService.DeleteAccount(c.Request().Context(), currentUser(c)); err != nil {
		return errs.HTTP(err)
	}
	h.authHandler.clearSessionCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "Account deleted successfully"})
}
