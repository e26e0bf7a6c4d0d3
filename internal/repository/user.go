// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/linkleaf/linkleaf/internal/models"
)

// CreateUser inserts a new user record. CreatedAt and UpdatedAt are set here.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, is_verified, email_verification_token_hash,
			password_reset_token_hash, password_reset_expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, user.IsVerified, user.EmailVerificationTokenHash,
		user.PasswordResetTokenHash, user.PasswordResetExpiresAt, user.CreatedAt, user.UpdatedAt)
	return err
}

// GetUserByID retrieves a user by id.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, email); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByVerificationTokenHash retrieves a user by the fingerprint of an
// outstanding email verification token.
func (r *Repository) GetUserByVerificationTokenHash(ctx context.Context, tokenHash string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`SELECT * FROM users WHERE email_verification_token_hash = ?`, tokenHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByResetTokenHash retrieves a user by the fingerprint of an
// outstanding password reset token.
func (r *Repository) GetUserByResetTokenHash(ctx context.Context, tokenHash string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`SELECT * FROM users WHERE password_reset_token_hash = ?`, tokenHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// EmailExists checks if a user with the given email exists.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE email = ?`, email)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ConsumeVerificationToken marks the user verified and clears the token
// fingerprint in a single compare-and-set update. Returns ErrNotFound if the
// fingerprint no longer matches, so concurrent redemption succeeds for at
// most one caller.
func (r *Repository) ConsumeVerificationToken(ctx context.Context, userID, tokenHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_verified = 1, email_verification_token_hash = NULL, updated_at = ?
		 WHERE id = ? AND email_verification_token_hash = ?`,
		time.Now().UTC(), userID, tokenHash)
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

// SetResetToken stores a new reset token fingerprint and expiry, overwriting
// any previous one. The store row is the single source of truth: once the
// new fingerprint is persisted, the old token can no longer match.
func (r *Repository) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_reset_token_hash = ?, password_reset_expires_at = ?, updated_at = ?
		 WHERE id = ?`,
		tokenHash, expiresAt, time.Now().UTC(), userID)
	return err
}

// ClearResetToken removes any pending reset token for the user.
func (r *Repository) ClearResetToken(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_reset_token_hash = NULL, password_reset_expires_at = NULL, updated_at = ?
		 WHERE id = ?`,
		time.Now().UTC(), userID)
	return err
}

// ConsumeResetToken sets the new password hash and clears both reset fields
// in a single compare-and-set update. Returns ErrNotFound if the fingerprint
// no longer matches (already consumed or superseded).
func (r *Repository) ConsumeResetToken(ctx context.Context, userID, tokenHash, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, password_reset_token_hash = NULL,
			password_reset_expires_at = NULL, updated_at = ?
		 WHERE id = ? AND password_reset_token_hash = ?`,
		passwordHash, time.Now().UTC(), userID, tokenHash)
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

// DeleteUser deletes a user by id.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}
