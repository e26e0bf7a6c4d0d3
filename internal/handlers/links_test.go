// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"codeberg.org/linkleaf/linkleaf/internal/handlers"
	appmw "codeberg.org/linkleaf/linkleaf/internal/middleware"
	"codeberg.org/linkleaf/linkleaf/internal/models"
	"codeberg.org/linkleaf/linkleaf/internal/repository"
	"codeberg.org/linkleaf/linkleaf/internal/services/session"
	"codeberg.org/linkleaf/linkleaf/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIServer(t *testing.T) (*echo.Echo, *repository.Repository, *session.Manager) {
	t.Helper()

	_, repo := testutil.NewTestDB(t)
	sessions, err := session.NewManager(testSecret, time.Hour)
	require.NoError(t, err)

	h := handlers.NewLinks(repo)

	e := echo.New()
	api := e.Group("/api", appmw.RequireAuth(sessions, repo))
	api.GET("/me", h.Me)
	api.GET("/links", h.ListLinks)
	api.POST("/links", h.CreateLink)
	api.PUT("/links/:id", h.UpdateLink)
	api.DELETE("/links/:id", h.DeleteLink)
	e.GET("/p/:id", h.PublicProfile)

	return e, repo, sessions
}

func doAuthed(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func issueFor(t *testing.T, sessions *session.Manager, userID string) string {
	t.Helper()
	token, err := sessions.Issue(userID)
	require.NoError(t, err)
	return token
}

func TestMeEndpoint(t *testing.T) {
	e, repo, sessions := newAPIServer(t)
	user := testutil.NewTestUser(t, repo, "alice@example.com", "secret123")
	token := issueFor(t, sessions, user.ID)

	rec := doAuthed(e, http.MethodGet, "/api/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e, _, _ := newAPIServer(t)

	for _, route := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/me"},
		{http.MethodGet, "/api/links"},
		{http.MethodPost, "/api/links"},
		{http.MethodPut, "/api/links/some-id"},
		{http.MethodDelete, "/api/links/some-id"},
	} {
		rec := doAuthed(e, route.method, route.path, "", "{}")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestCreateLinkEndpoint(t *testing.T) {
	e, repo, sessions := newAPIServer(t)
	user := testutil.NewTestUser(t, repo, "alice@example.com", "secret123")
	token := issueFor(t, sessions, user.ID)

	t.Run("creates link", func(t *testing.T) {
		rec := doAuthed(e, http.MethodPost, "/api/links", token,
			`{"title":"Blog","url":"https://example.com/blog","position":1}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var link models.Link
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &link))
		assert.NotEmpty(t, link.ID)
		assert.Equal(t, "Blog", link.Title)
	})

	t.Run("rejects missing title and bad url", func(t *testing.T) {
		rec := doAuthed(e, http.MethodPost, "/api/links", token,
			`{"title":"","url":"https://example.com"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doAuthed(e, http.MethodPost, "/api/links", token,
			`{"title":"Blog","url":"javascript:alert(1)"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateAndDeleteLinkEndpoints(t *testing.T) {
	e, repo, sessions := newAPIServer(t)
	alice := testutil.NewTestUser(t, repo, "alice@example.com", "secret123")
	bob := testutil.NewTestUser(t, repo, "bob@example.com", "secret123")
	aliceToken := issueFor(t, sessions, alice.ID)
	bobToken := issueFor(t, sessions, bob.ID)

	rec := doAuthed(e, http.MethodPost, "/api/links", aliceToken,
		`{"title":"Blog","url":"https://example.com/blog","position":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var link models.Link
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &link))

	t.Run("other users get 404", func(t *testing.T) {
		rec := doAuthed(e, http.MethodPut, "/api/links/"+link.ID, bobToken,
			`{"title":"Hijack","url":"https://example.com","position":1}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doAuthed(e, http.MethodDelete, "/api/links/"+link.ID, bobToken, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("owner updates and deletes", func(t *testing.T) {
		rec := doAuthed(e, http.MethodPut, "/api/links/"+link.ID, aliceToken,
			`{"title":"Homepage","url":"https://example.com","position":2}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Homepage")

		rec = doAuthed(e, http.MethodDelete, "/api/links/"+link.ID, aliceToken, "")
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = doAuthed(e, http.MethodDelete, "/api/links/"+link.ID, aliceToken, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListLinksEndpoint(t *testing.T) {
	e, repo, sessions := newAPIServer(t)
	user := testutil.NewTestUser(t, repo, "alice@example.com", "secret123")
	token := issueFor(t, sessions, user.ID)

	rec := doAuthed(e, http.MethodGet, "/api/links", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	for _, body := range []string{
		`{"title":"Second","url":"https://example.com/2","position":2}`,
		`{"title":"First","url":"https://example.com/1","position":1}`,
	} {
		rec := doAuthed(e, http.MethodPost, "/api/links", token, body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = doAuthed(e, http.MethodGet, "/api/links", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var links []models.Link
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &links))
	require.Len(t, links, 2)
	assert.Equal(t, "First", links[0].Title)
	assert.Equal(t, "Second", links[1].Title)
}

func TestPublicProfileEndpoint(t *testing.T) {
	e, repo, sessions := newAPIServer(t)
	user := testutil.NewTestUser(t, repo, "alice@example.com", "secret123")
	token := issueFor(t, sessions, user.ID)

	rec := doAuthed(e, http.MethodPost, "/api/links", token,
		`{"title":"Blog","url":"https://example.com/blog","position":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("no auth required", func(t *testing.T) {
		rec := doAuthed(e, http.MethodGet, "/p/"+user.ID, "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Blog")

		// Nothing about the credential state leaks.
		assert.NotContains(t, rec.Body.String(), "alice@example.com")
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("unknown profile returns 404", func(t *testing.T) {
		rec := doAuthed(e, http.MethodGet, "/p/no-such-user", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
