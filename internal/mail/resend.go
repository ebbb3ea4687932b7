// Package mail delivers transactional email. The only message this
// application sends is the passwordless sign-in link.
package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

// Mailer is the contract the auth service depends on.
type Mailer interface {
	// SendMagicLink emails a single-use sign-in URL to the given address.
	SendMagicLink(ctx context.Context, email, url string) error
}

// ResendMailer sends email through the Resend API. In dev mode (or when no
// API key is configured) it logs the link instead of sending, which keeps
// local sign-in usable without outbound mail.
type ResendMailer struct {
	client  *resend.Client
	from    string
	appName string
	dev     bool
}

// NewResendMailer constructs a mailer. A nil client (dev mode or missing key)
// degrades to log-only delivery.
func NewResendMailer(apiKey, from, appName string, dev bool) *ResendMailer {
	var client *resend.Client
	if apiKey != "" && !dev {
		client = resend.NewClient(apiKey)
	}
	return &ResendMailer{client: client, from: from, appName: appName, dev: dev}
}

// SendMagicLink emails the sign-in URL, or logs it in dev mode.
func (m *ResendMailer) SendMagicLink(ctx context.Context, email, url string) error {
	subject := fmt.Sprintf("Sign in to %s", m.appName)
	body := fmt.Sprintf(
		"Click the link below to sign in to %s. The link is valid once and expires shortly.\n\n%s\n\nIf you did not request this, you can ignore this email.",
		m.appName, url,
	)

	if m.dev {
		log.Info().Str("to", email).Str("url", url).Msg("magic link (dev mode, not sent)")
		return nil
	}
	if m.client == nil {
		return errors.New("mail not configured (missing RESEND_API_KEY)")
	}

	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	})
	if err == nil {
		log.Info().Str("to", email).Msg("magic link sent")
	}
	return err
}
