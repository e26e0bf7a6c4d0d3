// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

// Package email dispatches outbound notifications via SMTP.
package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/linkleaf/linkleaf/internal/config"
	"codeberg.org/linkleaf/linkleaf/internal/i18n"
	"github.com/wneessen/go-mail"
)

// DefaultTimeout bounds a single SMTP dial-and-send so a slow mail transport
// cannot hang the request indefinitely.
const DefaultTimeout = 10 * time.Second

// Service sends verification and password reset emails.
type Service struct {
	cfg     *config.SMTPConfig
	baseURL string
	timeout time.Duration
}

// NewService creates a new email service.
func NewService(cfg *config.SMTPConfig, baseURL string) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	timeout := DefaultTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}

	return &Service{
		cfg:     cfg,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
	}, nil
}

// SendVerification sends a verification email with the given raw token
// embedded in a link.
func (s *Service) SendVerification(ctx context.Context, toEmail, token string) error {
	verifyURL := fmt.Sprintf("%s/auth/verify-email?token=%s", s.baseURL, token)

	subject := i18n.T(ctx, "verification_email_subject")
	body := i18n.TData(ctx, "verification_email_body", map[string]any{
		"VerifyURL": verifyURL,
	})

	return s.send(ctx, toEmail, subject, body)
}

// SendPasswordReset sends a password reset email with the given raw token
// embedded in a link.
func (s *Service) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", s.baseURL, token)

	subject := i18n.T(ctx, "password_reset_email_subject")
	body := i18n.TData(ctx, "password_reset_email_body", map[string]any{
		"ResetURL": resetURL,
	})

	return s.send(ctx, toEmail, subject, body)
}

// send sends an email via SMTP using go-mail, bounded by the configured
// timeout.
func (s *Service) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	// Use implicit TLS (SSL) for port 465, STARTTLS for others
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := client.DialAndSendWithContext(sendCtx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
