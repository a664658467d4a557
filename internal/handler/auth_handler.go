package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "londonhealth/internal/errors"
	"londonhealth/internal/model"
	"londonhealth/internal/service"
	"londonhealth/internal/session"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	userService service.UserService
	sessions    *session.Manager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(userService service.UserService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{userService: userService, sessions: sessions}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// Login godoc
// @Summary Log in and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Uniform message: the response does not reveal whether the email
		// or the password was wrong.
		if errors.Is(err, apperrors.ErrUserNotFound) || errors.Is(err, apperrors.ErrInvalidCredentials) {
			return domainError(apperrors.ErrInvalidCredentials)
		}
		return domainError(err)
	}

	sid, err := h.sessions.Start(c.Request().Context(), user.ID, user.Role)
	if err != nil {
		return domainError(err)
	}
	session.SetCookie(c, sid, h.sessions.TTL())

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "logged in successfully",
		User:    user,
	})
}

// Logout godoc
// @Summary Log out and destroy the session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.End(c.Request().Context(), cookie.Value); err != nil {
			return domainError(err)
		}
	}
	session.ClearCookie(c)
	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// Me godoc
// @Summary Return the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess := session.FromContext(c)
	if sess == nil {
		return domainError(apperrors.ErrNotAuthenticated)
	}
	user, err := h.userService.GetUser(c.Request().Context(), sess.UserID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}
