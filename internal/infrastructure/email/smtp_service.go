package email

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// EmailService is the outbound mail gateway: one recipient, one
// synchronous attempt, no internal retries. Any transport failure is
// surfaced to the caller with the cause preserved.
type EmailService interface {
	SendConfirmationEmail(ctx context.Context, data ConfirmationEmailData) error
}

// SMTPConfig holds the relay address and credentials.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpEmailService struct {
	cfg SMTPConfig
	log zerolog.Logger
}

func NewSMTPEmailService(cfg SMTPConfig, log zerolog.Logger) EmailService {
	return &smtpEmailService{
		cfg: cfg,
		log: log.With().Str("component", "email").Logger(),
	}
}

func (s *smtpEmailService) SendConfirmationEmail(ctx context.Context, data ConfirmationEmailData) error {
	subject := "Welcome!"
	text := fmt.Sprintf(
		"Welcome to our newsletter, %s!\r\nVisit %s to confirm your subscription.",
		data.Name, data.ConfirmLink,
	)
	html := fmt.Sprintf(
		`<h1>Welcome to our newsletter!</h1><p>Click <a href="%s">here</a> to confirm your subscription.</p>`,
		data.ConfirmLink,
	)

	msg := buildMultipartMessage(s.cfg.From, data.Email, subject, text, html)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{data.Email}, msg); err != nil {
		s.log.Error().Err(err).
			Str("to", data.Email).
			Str("smtp_addr", addr).
			Msg("failed to send confirmation email")
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

// buildMultipartMessage assembles a multipart/alternative body so mail
// clients can choose between the text and HTML parts.
func buildMultipartMessage(from, to, subject, text, html string) []byte {
	const boundary = "newsletter-alt-boundary"

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	parts := []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=UTF-8", text},
		{"text/html; charset=UTF-8", html},
	}
	for _, part := range parts {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		fmt.Fprintf(&b, "Content-Type: %s\r\n\r\n", part.contentType)
		b.WriteString(part.body)
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return b.Bytes()
}
