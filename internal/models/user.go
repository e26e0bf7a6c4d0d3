// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

// User is the credential record for an account. Raw token secrets are never
// stored; the *_token_hash columns hold SHA256 fingerprints only.
type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID                         string         `db:"id" json:"id"`
	Email                      string         `db:"email" json:"email"`
	PasswordHash               string         `db:"password_hash" json:"-"`
	IsVerified                 bool           `db:"is_verified" json:"is_verified"`
	EmailVerificationTokenHash sql.NullString `db:"email_verification_token_hash" json:"-"`
	PasswordResetTokenHash     sql.NullString `db:"password_reset_token_hash" json:"-"`
	PasswordResetExpiresAt     sql.NullTime   `db:"password_reset_expires_at" json:"-"`
	CreatedAt                  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt                  time.Time      `db:"updated_at" json:"updated_at"`
}

// HasPendingReset reports whether a password reset is currently outstanding.
func (u *User) HasPendingReset() bool {
	return u.PasswordResetTokenHash.Valid && u.PasswordResetExpiresAt.Valid
}
