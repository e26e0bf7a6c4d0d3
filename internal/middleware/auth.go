// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

// Package middleware contains echo middleware for the HTTP server.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"codeberg.org/linkleaf/linkleaf/internal/auth"
	"codeberg.org/linkleaf/linkleaf/internal/repository"
	"codeberg.org/linkleaf/linkleaf/internal/services/session"
	"github.com/labstack/echo/v4"
)

// minTokenLength is a cheap plausibility check applied before the signature
// verification. A signed token is always far longer than this.
const minTokenLength = 32

// RequireAuth validates the bearer token and resolves it to a user record.
// Downstream handlers read the identity from the request context with
// auth.GetUser and need no further lookup.
func RequireAuth(sessions *session.Manager, repo *repository.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			rawToken, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || len(rawToken) < minTokenLength {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			userID, err := sessions.Verify(rawToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session token")
			}

			// The subject may no longer resolve if the account was deleted
			// after token issuance.
			user, err := repo.GetUserByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session token")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "database error")
			}

			ctx := auth.SetUser(c.Request().Context(), user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
