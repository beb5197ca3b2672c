// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"trailhead/internal/delivery/http/middleware"
	"trailhead/internal/delivery/http/response"
	"trailhead/internal/delivery/http/session"
	domainerrors "trailhead/internal/domain/errors"
	"trailhead/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc        usecase.AuthUsecase
	transport *session.Transport
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, transport *session.Transport, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:        uc,
		transport: transport,
		logger:    logger,
	}
}

// established sends a session-establishing response: the cookie carries
// the token for browsers and the body carries it for API clients.
func (h *AuthHandler) established(c echo.Context, statusCode int, out *usecase.SessionOutput, message string) error {
	h.transport.Attach(c, out.Token)

	return response.Success(c, statusCode, out, message)
}

// Signup handles the account registration request.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input usecase.SignupInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	out, err := h.uc.Signup(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.established(c, http.StatusCreated, out, "Account created successfully")
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	out, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.established(c, http.StatusOK, out, "Login successful")
}

// Logout replaces the session cookie with the logged-out sentinel. The
// token itself is not revoked; it simply ages out.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.transport.Clear(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// ForgotPassword starts the password reset flow.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var input usecase.ForgotPasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid forgot password input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Reset token sent to email")
}

// ResetPassword consumes a reset secret from the URL and sets a new password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var input usecase.ResetPasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset password input")
	}
	input.Token = c.Param("token")
	if err := c.Validate(&input); err != nil {
		return err
	}

	out, err := h.uc.ResetPassword(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.established(c, http.StatusOK, out, "Password reset successfully")
}

// UpdatePassword changes the password of the authenticated account.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrNotAuthenticated
	}

	var input usecase.UpdatePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update password input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	out, err := h.uc.UpdatePassword(c.Request().Context(), account.ID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.established(c, http.StatusOK, out, "Password updated successfully")
}
