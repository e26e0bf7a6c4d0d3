// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"codeberg.org/linkleaf/linkleaf/internal/auth"
	"codeberg.org/linkleaf/linkleaf/internal/models"
	"codeberg.org/linkleaf/linkleaf/internal/repository"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// LinkHandlers contains handlers for profile links and the public preview.
type LinkHandlers struct {
	repo *repository.Repository
}

// NewLinks creates a new LinkHandlers instance.
func NewLinks(repo *repository.Repository) *LinkHandlers {
	return &LinkHandlers{repo: repo}
}

// Me returns the authenticated user's record.
func (h *LinkHandlers) Me(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	return c.JSON(http.StatusOK, user)
}

// ListLinks returns all links of the authenticated user.
func (h *LinkHandlers) ListLinks(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())

	links, err := h.repo.ListLinksByUserID(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "database error"})
	}
	return c.JSON(http.StatusOK, links)
}

// LinkRequest is the request body for creating or updating a link.
type LinkRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Position int64  `json:"position"`
}

func (r *LinkRequest) validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	parsed, err := url.Parse(r.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errors.New("url must be a valid http(s) URL")
	}
	return nil
}

// CreateLink adds a link to the authenticated user's profile.
func (h *LinkHandlers) CreateLink(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())

	var req LinkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	link := &models.Link{
		ID:       uuid.New().String(),
		UserID:   user.ID,
		Title:    req.Title,
		URL:      req.URL,
		Position: req.Position,
	}
	if err := h.repo.CreateLink(c.Request().Context(), link); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create link"})
	}

	return c.JSON(http.StatusCreated, link)
}

// UpdateLink updates one of the authenticated user's links.
func (h *LinkHandlers) UpdateLink(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())

	var req LinkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	link := &models.Link{
		ID:       c.Param("id"),
		UserID:   user.ID,
		Title:    req.Title,
		URL:      req.URL,
		Position: req.Position,
	}
	if err := h.repo.UpdateLink(c.Request().Context(), link); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "link not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to update link"})
	}

	return c.JSON(http.StatusOK, link)
}

// DeleteLink removes one of the authenticated user's links.
func (h *LinkHandlers) DeleteLink(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())

	err := h.repo.DeleteLink(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "link not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to delete link"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "link deleted"})
}

// PublicProfile returns the public preview of a profile: its links, nothing
// about the credential state.
func (h *LinkHandlers) PublicProfile(c echo.Context) error {
	userID := c.Param("id")

	user, err := h.repo.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "database error"})
	}

	links, err := h.repo.ListLinksByUserID(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "database error"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"id":    user.ID,
		"links": links,
	})
}
