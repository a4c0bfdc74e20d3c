package mailer

import (
	"fmt"
	"net/smtp"

	"user-messaging-backend/internal/config"
)

// Mailer sends password reset mail over SMTP. Callers treat delivery as
// best-effort; errors are reported but nothing in the reset flow depends on
// them.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func New(cfg config.MailConfig) *Mailer {
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.User,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// Enabled reports whether an SMTP host is configured
func (m *Mailer) Enabled() bool {
	return m.host != ""
}

// SendPasswordReset mails the reset token to the recipient
func (m *Mailer) SendPasswordReset(to, token string) error {
	if !m.Enabled() {
		return fmt.Errorf("smtp host not configured")
	}

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Password Reset\r\n\r\n"+
			"Use this token to reset your password (valid for a short time):\r\n\r\n%s\r\n",
		m.from, to, token,
	)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := m.host + ":" + m.port
	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(body))
}
