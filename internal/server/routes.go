// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

package server

import (
	"codeberg.org/linkleaf/linkleaf/internal/handlers"
	appmw "codeberg.org/linkleaf/linkleaf/internal/middleware"
	"codeberg.org/linkleaf/linkleaf/internal/repository"
	authsvc "codeberg.org/linkleaf/linkleaf/internal/services/auth"
	"codeberg.org/linkleaf/linkleaf/internal/services/session"
	"github.com/labstack/echo/v4"
)

func setupRoutes(e *echo.Echo, repo *repository.Repository, authService *authsvc.Service, sessions *session.Manager) {
	h := handlers.New(repo)
	authHandler := handlers.NewAuth(authService)
	linkHandler := handlers.NewLinks(repo)

	e.GET("/health", h.Health)

	// Credential lifecycle - public
	authGroup := e.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.GET("/verify-email", authHandler.VerifyEmail)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.POST("/forgot-password", authHandler.ForgotPassword)
	authGroup.PATCH("/reset-password", authHandler.ResetPassword)

	// Profile management - requires a valid bearer token
	api := e.Group("/api", appmw.RequireAuth(sessions, repo))
	api.GET("/me", linkHandler.Me)
	api.GET("/links", linkHandler.ListLinks)
	api.POST("/links", linkHandler.CreateLink)
	api.PUT("/links/:id", linkHandler.UpdateLink)
	api.DELETE("/links/:id", linkHandler.DeleteLink)

	// Public profile preview
	e.GET("/p/:id", linkHandler.PublicProfile)
}
