package services

import (
	"fmt"
	"time"

	"github.com/Heshmert/P2-31499269/internal/email"
	"github.com/Heshmert/P2-31499269/internal/models"
)

// Mailer sends the three transactional emails the site produces.
type Mailer interface {
	SendContactConfirmation(contact *models.Contact, body string, sentAt time.Time) error
	SendAdminReply(to, name, originalMessage, reply, repliedBy string) error
	SendPaymentReceipt(to, name, transactionID string, amount float64, currency, description string) error
}

// MailerService renders the typed templates and hands them to the SMTP
// sender. Every outgoing mail is BCC'd to the configured notification
// address when one is set.
type MailerService struct {
	sender      email.Sender
	notifyEmail string
}

func NewMailerService(sender email.Sender, notifyEmail string) *MailerService {
	return &MailerService{sender: sender, notifyEmail: notifyEmail}
}

func (s *MailerService) SendContactConfirmation(contact *models.Contact, body string, sentAt time.Time) error {
	tmpl := email.ContactConfirmation{
		Name:     contact.Name,
		Email:    contact.Email,
		Body:     body,
		Country:  displayableCountry(contact.Country),
		ClientIP: displayableIP(contact.ClientIP),
		SentAt:   sentAt,
	}
	return s.send(contact.Email, tmpl.Subject(), tmpl)
}

func (s *MailerService) SendAdminReply(to, name, originalMessage, reply, repliedBy string) error {
	tmpl := email.AdminReply{
		Name:            name,
		OriginalMessage: originalMessage,
		Reply:           reply,
		RepliedBy:       repliedBy,
	}
	return s.send(to, tmpl.Subject(), tmpl)
}

func (s *MailerService) SendPaymentReceipt(to, name, transactionID string, amount float64, currency, description string) error {
	tmpl := email.PaymentReceipt{
		Name:          name,
		TransactionID: transactionID,
		Amount:        fmt.Sprintf("%.2f", amount),
		Currency:      currency,
		Description:   description,
		PaidAt:        time.Now(),
	}
	return s.send(to, tmpl.Subject(), tmpl)
}

type renderable interface {
	Render() (string, error)
}

func (s *MailerService) send(to, subject string, tmpl renderable) error {
	htmlBody, err := tmpl.Render()
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}
	return s.sender.Send(&email.Message{
		To:       to,
		Bcc:      s.notifyEmail,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

// Loopback addresses and unknown countries add nothing to the email, so
// they are left out of the rendered details list.
func displayableCountry(country string) string {
	if country == "" || country == "Desconocido" {
		return ""
	}
	return country
}

func displayableIP(ip string) string {
	if ip == "::1" || ip == "127.0.0.1" {
		return ""
	}
	return ip
}
