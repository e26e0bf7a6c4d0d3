// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/linkleaf/linkleaf/internal/models"
	"codeberg.org/linkleaf/linkleaf/internal/repository"
	"codeberg.org/linkleaf/linkleaf/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLink(t *testing.T, repo *repository.Repository, userID, title string, position int64) *models.Link {
	t.Helper()
	link := &models.Link{
		ID:       uuid.New().String(),
		UserID:   userID,
		Title:    title,
		URL:      "https://example.com/" + title,
		Position: position,
	}
	require.NoError(t, repo.CreateLink(context.Background(), link))
	return link
}

func TestCreateAndGetLink(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com", "secret123")
	link := newLink(t, repo, user.ID, "blog", 1)

	stored, err := repo.GetLink(ctx, link.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "blog", stored.Title)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestListLinksOrderedByPosition(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com", "secret123")
	newLink(t, repo, user.ID, "third", 3)
	newLink(t, repo, user.ID, "first", 1)
	newLink(t, repo, user.ID, "second", 2)

	links, err := repo.ListLinksByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, "first", links[0].Title)
	assert.Equal(t, "second", links[1].Title)
	assert.Equal(t, "third", links[2].Title)
}

func TestListLinksEmpty(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	user := testutil.NewTestUser(t, repo, "alice@example.com", "secret123")
	links, err := repo.ListLinksByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestUpdateLink(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com", "secret123")
	link := newLink(t, repo, user.ID, "blog", 1)

	link.Title = "homepage"
	link.URL = "https://example.com/home"
	link.Position = 5
	require.NoError(t, repo.UpdateLink(ctx, link))

	stored, err := repo.GetLink(ctx, link.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "homepage", stored.Title)
	assert.Equal(t, int64(5), stored.Position)
}

func TestLinkOwnerScoping(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	alice := testutil.NewTestUser(t, repo, "alice@example.com", "secret123")
	bob := testutil.NewTestUser(t, repo, "bob@example.com", "secret123")
	link := newLink(t, repo, alice.ID, "blog", 1)

	// Another user cannot read, update or delete the link.
	_, err := repo.GetLink(ctx, link.ID, bob.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	stolen := *link
	stolen.UserID = bob.ID
	assert.ErrorIs(t, repo.UpdateLink(ctx, &stolen), repository.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteLink(ctx, link.ID, bob.ID), repository.ErrNotFound)

	// The owner still can.
	_, err = repo.GetLink(ctx, link.ID, alice.ID)
	assert.NoError(t, err)
}

func TestDeleteLink(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com", "secret123")
	link := newLink(t, repo, user.ID, "blog", 1)

	require.NoError(t, repo.DeleteLink(ctx, link.ID, user.ID))

	_, err := repo.GetLink(ctx, link.ID, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteLink(ctx, link.ID, user.ID), repository.ErrNotFound)
}

func TestDeleteUserCascadesLinks(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com", "secret123")
	newLink(t, repo, user.ID, "blog", 1)

	require.NoError(t, repo.DeleteUser(ctx, user.ID))

	links, err := repo.ListLinksByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}
