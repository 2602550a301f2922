package utils

import (
	"gopkg.in/gomail.v2"

	"github.com/servicehub/servicehub-api/config"
)

// Mailer sends transactional email over SMTP. Construct it once from the
// loaded config; a Mailer with no SMTP host configured silently drops mail,
// which keeps development environments working without credentials.
type Mailer struct {
	from   string
	dialer *gomail.Dialer
}

func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{from: cfg.EmailUser}
	if cfg.SMTPHost != "" {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	}
	return m
}

func (m *Mailer) Send(to, subject, body string) error {
	if m.dialer == nil {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}
