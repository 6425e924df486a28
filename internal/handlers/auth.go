package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sajibdev/chirpnet/backend/internal/errs"
	appmw "github.com/sajibdev/chirpnet/backend/internal/middleware"
	"github.com/sajibdev/chirpnet/backend/internal/models"
	"github.com/sajibdev/chirpnet/backend/internal/services"
)

// AuthHandler handles signup, login, logout and current-user lookup.
type AuthHandler struct {
	authService  *services.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie should be true
// outside development so the session cookie is HTTPS-only.
func NewAuthHandler(authService *services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// RegisterAuthRoutes registers the open authentication routes on open
// and the authenticated /me route on protected.
func (h *AuthHandler) RegisterAuthRoutes(open, protected *echo.Group) {
	open.POST("/signup", h.Signup)
	open.POST("/login", h.Login)
	open.POST("/logout", h.Logout)
	protected.GET("/me", h.Me)
}

// Signup registers a new account and issues a session cookie.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	user, err := h.authService.Signup(c.Request().Context(), req)
	if err != nil {
		return errs.HTTP(err)
	}

	token, err := h.authService.IssueToken(user.ID)
	if err != nil {
		return errs.HTTP(err)
	}
	h.setSessionCookie(c, token)

	return c.JSON(http.StatusCreated, user)
}

// Login authenticates credentials and issues a session cookie. The
// failure response is identical for unknown usernames and wrong
// passwords.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return errs.HTTP(err)
	}

	token, err := h.authService.IssueToken(user.ID)
	if err != nil {
		return errs.HTTP(err)
	}
	h.setSessionCookie(c, token)

	return c.JSON(http.StatusOK, user)
}

// Logout replaces the client's session cookie with an already-expired
// one. There is no server-side revocation list; an un-expired stolen
// token stays valid until natural expiry.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// Me returns the authenticated user's record.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     appmw.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     appmw.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
