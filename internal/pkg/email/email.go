package email

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// Mailer sends account emails
type Mailer interface {
	// SendPasswordReset mails a reset link. It reports false when nothing was sent because
	// mail delivery is not configured.
	SendPasswordReset(ctx context.Context, toEmail, toName, link string, expiresAt time.Time) (bool, error)
}

// Config holds mail delivery settings
type Config struct {
	SendGridAPIKey string
	FromAddress    string
	FromName       string
}

// NewMailer returns a SendGrid mailer when an API key is configured and a logging mailer otherwise
func NewMailer(cfg Config, logger zerolog.Logger) Mailer {
	logger = logger.With().Str("component", "mailer").Logger()
	if cfg.SendGridAPIKey == "" || cfg.FromAddress == "" {
		logger.Warn().Msg("SendGrid not configured - reset links will only be logged")
		return &LogMailer{logger: logger}
	}
	return &SendGridMailer{
		key:    cfg.SendGridAPIKey,
		host:   sendGridHost,
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		logger: logger,
	}
}

// SendGridMailer delivers mail through the SendGrid v3 API
type SendGridMailer struct {
	key    string
	host   string
	from   *sgmail.Email
	logger zerolog.Logger
}

func resetMessage(toName, link string, expiresAt time.Time) (subject, text, htmlBody string) {
	subject = "Reset your ProjectHub password"
	text = fmt.Sprintf("Hello %s,\n\nAn administrator created a password reset link for your account:\n\n%s\n\nThe link expires on %s and can be used once.\n",
		toName, link, expiresAt.Format(time.RFC1123))
	htmlBody = fmt.Sprintf(`<p>Hello %s,</p><p>An administrator created a password reset link for your account:</p><p><a href="%s">Reset password</a></p><p>The link expires on %s and can be used once.</p>`,
		html.EscapeString(toName), html.EscapeString(link), expiresAt.Format(time.RFC1123))
	return subject, text, htmlBody
}

func (m *SendGridMailer) prepare(toEmail, toName, subject, text, htmlBody string) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail(toName, toEmail))

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(
		sgmail.NewContent("text/plain", text),
		sgmail.NewContent("text/html", htmlBody),
	)
	return msg
}

// SendPasswordReset implements Mailer
func (m *SendGridMailer) SendPasswordReset(ctx context.Context, toEmail, toName, link string, expiresAt time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	subject, text, htmlBody := resetMessage(toName, link, expiresAt)

	req := sendgrid.GetRequest(m.key, sendGridEndpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(toEmail, toName, subject, text, htmlBody))

	res, err := sendgrid.API(req)
	if err != nil {
		m.logger.Error().Err(err).Str("to", toEmail).Msg("SendGrid request failed")
		return false, fmt.Errorf("failed to send reset email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		m.logger.Error().Int("status", res.StatusCode).Str("to", toEmail).Msg("SendGrid rejected reset email")
		return false, fmt.Errorf("sendgrid returned status %d", res.StatusCode)
	}
	m.logger.Info().Str("to", toEmail).Msg("Password reset email sent")
	return true, nil
}

// LogMailer writes reset links to the log instead of sending them
type LogMailer struct {
	logger zerolog.Logger
}

// SendPasswordReset implements Mailer
func (m *LogMailer) SendPasswordReset(_ context.Context, toEmail, _ string, link string, expiresAt time.Time) (bool, error) {
	m.logger.Warn().
		Str("to", toEmail).
		Str("link", link).
		Time("expiresAt", expiresAt).
		Msg("Mail delivery not configured - password reset email not sent")
	return false, nil
}
