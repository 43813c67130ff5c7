// Package email sends the site's transactional mail over SMTP and
// renders the fixed set of message templates.
package email

import (
	"errors"

	"gopkg.in/gomail.v2"
)

// Message is one outgoing mail, already rendered.
type Message struct {
	To       string
	Bcc      string
	Subject  string
	HTMLBody string
}

// Sender delivers rendered messages. Implemented by SMTPSender; tests
// substitute a stub.
type Sender interface {
	Send(msg *Message) error
}

// Config holds the SMTP relay settings. Username doubles as the sending
// address, as the relay account is the From mailbox.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

type SMTPSender struct {
	cfg Config
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(msg *Message) error {
	if s.cfg.Host == "" {
		return errors.New("SMTP host is not configured")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.Username, s.cfg.FromName)
	m.SetHeader("To", msg.To)
	if msg.Bcc != "" {
		m.SetHeader("Bcc", msg.Bcc)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
