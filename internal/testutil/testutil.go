// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"codeberg.org/linkleaf/linkleaf/internal/database"
	"codeberg.org/linkleaf/linkleaf/internal/models"
	"codeberg.org/linkleaf/linkleaf/internal/repository"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a verified test user with the given password.
func NewTestUser(t *testing.T, repo *repository.Repository, email, password string) *models.User {
	t.Helper()
	user := newUser(t, repo, email, password)
	require.NoError(t, repo.ConsumeVerificationToken(context.Background(), user.ID, user.EmailVerificationTokenHash.String))
	user.IsVerified = true
	return user
}

// NewUnverifiedTestUser creates a test user that has not redeemed its
// verification token yet.
func NewUnverifiedTestUser(t *testing.T, repo *repository.Repository, email, password string) *models.User {
	t.Helper()
	return newUser(t, repo, email, password)
}

func newUser(t *testing.T, repo *repository.Repository, email, password string) *models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(passwordHash),
	}
	user.EmailVerificationTokenHash.String = "test-verification-hash-" + user.ID
	user.EmailVerificationTokenHash.Valid = true

	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// SentMail records one outbound message captured by MailRecorder.
type SentMail struct {
	To    string
	Token string
}

// MailRecorder satisfies the auth service's Mailer interface and captures
// outbound tokens instead of dialing SMTP.
type MailRecorder struct {
	mu            sync.Mutex
	Err           error // when set, every send fails with this error
	Verifications []SentMail
	Resets        []SentMail
}

func (m *MailRecorder) SendVerification(_ context.Context, to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Verifications = append(m.Verifications, SentMail{To: to, Token: token})
	return nil
}

func (m *MailRecorder) SendPasswordReset(_ context.Context, to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Resets = append(m.Resets, SentMail{To: to, Token: token})
	return nil
}

// LastVerification returns the most recently captured verification mail.
func (m *MailRecorder) LastVerification(t *testing.T) SentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.Verifications, "no verification email was sent")
	return m.Verifications[len(m.Verifications)-1]
}

// LastReset returns the most recently captured password reset mail.
func (m *MailRecorder) LastReset(t *testing.T) SentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.Resets, "no password reset email was sent")
	return m.Resets[len(m.Resets)-1]
}
