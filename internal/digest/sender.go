package digest

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/seeksy/rate-desk/internal/config"
	"github.com/sirupsen/logrus"
)

// Mailer delivers a rendered digest
type Mailer interface {
	Send(subject, body string) error
}

// Sender handles sending digests via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// Send mails the digest to every configured recipient
func (s *Sender) Send(subject, body string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = s.cfg.DigestRecipients
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send digest to %v: %v", e.To, err)
		return fmt.Errorf("failed to send digest: %w", err)
	}

	s.logger.Infof("Digest sent to %v: %s", e.To, e.Subject)
	return nil
}
