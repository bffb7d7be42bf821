package notification

import (
	"fmt"
	"strings"

	"github.com/plannerhub/planner-api/internal/config"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer is the outbound email transport. Send is fire-and-forget from the
// pipeline's point of view: failures are logged by callers, never retried.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger zerolog.Logger
}

func NewSMTPMailer(cfg config.EmailConfig, logger zerolog.Logger) (*SMTPMailer, error) {
	host := strings.TrimSpace(cfg.SMTPHost)
	from := strings.TrimSpace(cfg.From)
	if host == "" {
		return nil, fmt.Errorf("smtp_host is required for the mailer")
	}
	if from == "" {
		return nil, fmt.Errorf("from is required for the mailer")
	}
	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}

	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, strings.TrimSpace(cfg.Username), cfg.Password),
		from:   from,
		logger: logger.With().Str("component", "mailer").Logger(),
	}, nil
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient address is empty")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return err
	}

	m.logger.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
