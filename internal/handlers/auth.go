// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/linkleaf/linkleaf/internal/services/auth"
	"github.com/labstack/echo/v4"
)

// AuthHandlers contains handlers for the credential lifecycle endpoints.
type AuthHandlers struct {
	auth *auth.Service
}

// NewAuth creates a new AuthHandlers instance.
func NewAuth(authService *auth.Service) *AuthHandlers {
	return &AuthHandlers{auth: authService}
}

// SignupRequest is the request body for account creation.
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SessionResponse carries a freshly issued session token.
type SessionResponse struct {
	Token string `json:"token"`
	User  any    `json:"user,omitempty"`
}

// Signup creates an unverified account and sends a verification email. The
// raw token leaves the system only via that email, never in the response.
func (h *AuthHandlers) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	user, err := h.auth.Signup(c.Request().Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "account created, check your email to verify your address",
		"user":    user,
	})
}

// VerifyEmail redeems a verification token from the emailed link.
func (h *AuthHandlers) VerifyEmail(c echo.Context) error {
	user, token, err := h.auth.VerifyEmail(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, SessionResponse{Token: token, User: user})
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and issues a session token.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, SessionResponse{Token: token, User: user})
}

// Logout acknowledges a client-side token discard. Sessions are stateless;
// there is no server-side revocation list.
func (h *AuthHandlers) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// ForgotPasswordRequest is the request body for requesting a reset token.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a reset token and emails it to the account owner.
func (h *AuthHandlers) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "password reset email sent",
	})
}

// ResetPasswordRequest is the request body for redeeming a reset token.
type ResetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetPassword redeems a reset token and issues a fresh session token.
func (h *AuthHandlers) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	user, token, err := h.auth.ResetPassword(c.Request().Context(), c.QueryParam("token"), req.Password, req.ConfirmPassword)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, SessionResponse{Token: token, User: user})
}
