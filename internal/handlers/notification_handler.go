package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sajibdev/chirpnet/backend/internal/errs"
	"github.com/sajibdev/chirpnet/backend/internal/services"
)

// NotificationHandler handles the notification inbox HTTP requests.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification routes; all require
// a session.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("", h.GetNotifications)
	g.DELETE("", h.DeleteNotifications)
}

// GetNotifications lists the actor's notifications. Listing marks
// everything returned as read.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifications, err := h.notificationService.List(c.Request().Context(), currentUser(c))
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// DeleteNotifications clears the actor's notification inbox.
func (h *NotificationHandler) DeleteNotifications(c echo.Context) error {
	if err := h.notificationService.DeleteAll(c.Request().Context(), currentUser(c)); err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notifications deleted successfully"})
}
