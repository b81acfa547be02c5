package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

var ErrNotConfigured = errors.New("smtp is not configured")

type Mailer struct {
	addr     string // host:port
	from     string
	password string
	log      *zerolog.Logger
}

func New(addr, from, password string, log *zerolog.Logger) *Mailer {
	return &Mailer{addr: addr, from: from, password: password, log: log}
}

func (m *Mailer) SendRegistrationConfirmation(recipient, name, eventName string) error {
	subject := "Registration confirmed: " + eventName
	body := fmt.Sprintf(
		"Hi %s,\n\nYour registration for \"%s\" is confirmed and your payment proof has been received.\nSee you there!\n\nCampusHub",
		name, eventName,
	)
	return m.send(recipient, subject, body)
}

// SendContactCopy forwards a contact form submission to the staff inbox.
func (m *Mailer) SendContactCopy(recipient, senderName, subject, message string) error {
	body := fmt.Sprintf("New contact message from %s:\n\n%s", senderName, message)
	return m.send(recipient, "[Contact] "+subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if m.addr == "" || m.from == "" {
		return ErrNotConfigured
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.from, to, subject, body,
	)

	host := m.addr
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	auth := smtp.PlainAuth("", m.from, m.password, host)

	if err := smtp.SendMail(m.addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		m.log.Warn().Msgf("failed to send email to %s: %v", to, err)
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().Msgf("email sent to %s (%s)", to, subject)
	return nil
}
