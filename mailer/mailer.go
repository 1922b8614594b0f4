// Package mailer delivers password-reset mail over SMTP. Delivery
// failures are logged and swallowed: the forgot-password endpoint must
// not reveal whether an account exists.
package mailer

import (
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/Ishan11032005GitHub/career-navigator-backend/logging"
)

// Mailer sends plain-text mail. A zero-configured Mailer (empty host)
// silently drops messages, which keeps local development credential-free.
type Mailer struct {
	host   string
	port   int
	user   string
	pass   string
	from   string
	logger logging.Logger
}

// New creates a Mailer. host may be empty to disable delivery.
func New(host string, port int, user, pass, from string, logger logging.Logger) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from, logger: logger}
}

// SendResetToken mails the password-reset token to the user.
func (m *Mailer) SendResetToken(email, username, token string) {
	body := fmt.Sprintf(
		"Hi %s,\n\nHere is your password reset token:\n%s\n\n– Career Navigator AI",
		username, token)
	m.send(email, "Career Navigator AI – Password Reset", body)
}

func (m *Mailer) send(to, subject, body string) {
	if m.host == "" {
		m.logger.Warn("smtp not configured, dropping mail", "to", to, "subject", subject)
		return
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		m.logger.Error("mail from address invalid", "error", err)
		return
	}
	if err := msg.To(to); err != nil {
		m.logger.Error("mail to address invalid", "error", err)
		return
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.user),
		mail.WithPassword(m.pass),
	)
	if err != nil {
		m.logger.Error("smtp client setup failed", "error", err)
		return
	}
	if err := client.DialAndSend(msg); err != nil {
		m.logger.Error("mail delivery failed", "to", to, "error", err)
		return
	}
	m.logger.Info("mail sent", "to", to, "subject", subject)
}
