// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

// Package auth implements the credential and token lifecycle: signup with
// email verification, password login, and the time-bounded single-use
// password reset flow.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"codeberg.org/linkleaf/linkleaf/internal/models"
	"codeberg.org/linkleaf/linkleaf/internal/repository"
	"codeberg.org/linkleaf/linkleaf/internal/services/session"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password, so responses never reveal which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	// ErrInvalidToken covers unknown, expired and already-consumed tokens.
	// The three cases are indistinguishable to the caller by design.
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrAccountNotFound  = errors.New("no account with this email")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrMissingFields    = errors.New("email and password are required")
	ErrDispatchFailed   = errors.New("failed to send email")
)

// ResetTokenTTL is how long a password reset token is valid.
const ResetTokenTTL = 10 * time.Minute

// dummyHash is used for constant-time login to prevent timing attacks.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

// Mailer delivers raw tokens to the account owner. It is the only path a raw
// token ever leaves the system.
type Mailer interface {
	SendVerification(ctx context.Context, to, token string) error
	SendPasswordReset(ctx context.Context, to, token string) error
}

// Service implements the signup, verification, login and reset flows.
type Service struct {
	repo              *repository.Repository
	sessions          *session.Manager
	mailer            Mailer
	passwordValidator *PasswordValidator
}

// NewService creates a new auth service.
func NewService(repo *repository.Repository, sessions *session.Manager, mailer Mailer) *Service {
	return &Service{
		repo:              repo,
		sessions:          sessions,
		mailer:            mailer,
		passwordValidator: DefaultPasswordValidator(),
	}
}

// PasswordValidator returns the password validator for use in handlers.
func (s *Service) PasswordValidator() *PasswordValidator {
	return s.passwordValidator
}

// Signup creates an unverified account and emails a verification token. The
// raw token never appears in the returned record; only its fingerprint is
// persisted.
func (s *Service) Signup(ctx context.Context, email, password, confirmPassword string) (*models.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	validation := s.passwordValidator.Validate(password, email)
	if !validation.Valid {
		return nil, &PasswordValidationError{Errors: validation.Errors}
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rawToken, tokenHash, err := GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(passwordHash),
	}
	user.EmailVerificationTokenHash.String = tokenHash
	user.EmailVerificationTokenHash.Valid = true

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.mailer.SendVerification(ctx, email, rawToken); err != nil {
		// The account must not exist without a deliverable verification token.
		if delErr := s.repo.DeleteUser(ctx, user.ID); delErr != nil {
			slog.Error("signup_rollback_failed", "user_id", user.ID, "error", delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	slog.Info("signup_success", "user_id", user.ID, "email", email)
	return user, nil
}

// VerifyEmail redeems a verification token and issues a session token. A
// token that never existed and one already consumed produce the same error;
// there is no oracle for token existence.
func (s *Service) VerifyEmail(ctx context.Context, rawToken string) (*models.User, string, error) {
	if rawToken == "" {
		return nil, "", ErrInvalidToken
	}

	tokenHash := HashToken(rawToken)

	user, err := s.repo.GetUserByVerificationTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("verify_email_failed", "reason", "token_not_found")
			return nil, "", ErrInvalidToken
		}
		return nil, "", fmt.Errorf("failed to look up verification token: %w", err)
	}

	if err := s.repo.ConsumeVerificationToken(ctx, user.ID, tokenHash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidToken
		}
		return nil, "", fmt.Errorf("failed to consume verification token: %w", err)
	}

	user.IsVerified = true
	user.EmailVerificationTokenHash.Valid = false
	user.EmailVerificationTokenHash.String = ""

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	slog.Info("verify_email_success", "user_id", user.ID)
	return user, token, nil
}

// Login authenticates a user and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform bcrypt comparison to prevent timing attacks.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "email", email, "reason", "user_not_found")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login_failed", "email", email, "reason", "invalid_password")
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsVerified {
		slog.Warn("login_failed", "email", email, "reason", "email_not_verified")
		return nil, "", ErrEmailNotVerified
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	slog.Info("login_success", "user_id", user.ID, "email", email)
	return user, token, nil
}

// ForgotPassword issues a short-lived reset token and emails it. Issuing a
// new token overwrites the stored fingerprint, so any earlier token becomes
// unusable. If the email cannot be dispatched the pending reset is rolled
// back; a reset token must never remain valid if the user never received it.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	rawToken, tokenHash, err := GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiresAt := time.Now().Add(ResetTokenTTL).UTC()
	if err := s.repo.SetResetToken(ctx, user.ID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, email, rawToken); err != nil {
		if clearErr := s.repo.ClearResetToken(ctx, user.ID); clearErr != nil {
			slog.Error("reset_rollback_failed", "user_id", user.ID, "error", clearErr)
		}
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	slog.Info("forgot_password_success", "user_id", user.ID)
	return nil
}

// ResetPassword redeems a reset token exactly once, updates the credential
// and issues a fresh session token. An expired token and an unknown token
// produce the same error.
func (s *Service) ResetPassword(ctx context.Context, rawToken, password, confirmPassword string) (*models.User, string, error) {
	if rawToken == "" {
		return nil, "", ErrInvalidToken
	}

	tokenHash := HashToken(rawToken)

	user, err := s.repo.GetUserByResetTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("reset_password_failed", "reason", "token_not_found")
			return nil, "", ErrInvalidToken
		}
		return nil, "", fmt.Errorf("failed to look up reset token: %w", err)
	}

	if !user.PasswordResetExpiresAt.Valid || time.Now().After(user.PasswordResetExpiresAt.Time) {
		slog.Warn("reset_password_failed", "user_id", user.ID, "reason", "token_expired")
		return nil, "", ErrInvalidToken
	}

	if password != confirmPassword {
		return nil, "", ErrPasswordMismatch
	}

	validation := s.passwordValidator.Validate(password, user.Email)
	if !validation.Valid {
		return nil, "", &PasswordValidationError{Errors: validation.Errors}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.ConsumeResetToken(ctx, user.ID, tokenHash, string(passwordHash)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidToken
		}
		return nil, "", fmt.Errorf("failed to consume reset token: %w", err)
	}

	user.PasswordHash = string(passwordHash)
	user.PasswordResetTokenHash = sql.NullString{}
	user.PasswordResetExpiresAt = sql.NullTime{}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	slog.Info("reset_password_success", "user_id", user.ID)
	return user, token, nil
}
