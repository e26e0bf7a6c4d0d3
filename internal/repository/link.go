// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/linkleaf/linkleaf/internal/models"
)

// CreateLink inserts a new link for a user.
func (r *Repository) CreateLink(ctx context.Context, link *models.Link) error {
	now := time.Now().UTC()
	link.CreatedAt = now
	link.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO links (id, user_id, title, url, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		link.ID, link.UserID, link.Title, link.URL, link.Position, link.CreatedAt, link.UpdatedAt)
	return err
}

// GetLink retrieves a link by id, scoped to its owner.
func (r *Repository) GetLink(ctx context.Context, id, userID string) (*models.Link, error) {
	var link models.Link
	err := r.db.GetContext(ctx, &link, `SELECT * FROM links WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &link, nil
}

// ListLinksByUserID returns all links for a user ordered by position.
func (r *Repository) ListLinksByUserID(ctx context.Context, userID string) ([]models.Link, error) {
	links := []models.Link{}
	err := r.db.SelectContext(ctx, &links,
		`SELECT * FROM links WHERE user_id = ? ORDER BY position, created_at`, userID)
	if err != nil {
		return nil, err
	}
	return links, nil
}

// UpdateLink updates title, url and position of a link, scoped to its owner.
func (r *Repository) UpdateLink(ctx context.Context, link *models.Link) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE links SET title = ?, url = ?, position = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		link.Title, link.URL, link.Position, time.Now().UTC(), link.ID, link.UserID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLink deletes a link by id, scoped to its owner.
func (r *Repository) DeleteLink(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
