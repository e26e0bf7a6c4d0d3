// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/linkleaf/linkleaf/internal/services/auth"
	"github.com/labstack/echo/v4"
)

// errorResponse is the JSON error body shape for all auth endpoints.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// respondError maps flow errors to transport status codes in one place.
func respondError(c echo.Context, err error) error {
	var pvErr *auth.PasswordValidationError
	if errors.As(err, &pvErr) {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "password does not meet requirements",
			Details: pvErr.Messages(),
		})
	}

	switch {
	case errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrInvalidToken):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrEmailNotVerified):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})

	case errors.Is(err, auth.ErrEmailTaken):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})

	case errors.Is(err, auth.ErrAccountNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})

	default:
		slog.Error("internal_error", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
