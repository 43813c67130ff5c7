package services

import (
	"context"
	"errors"
	"time"

	"github.com/Heshmert/P2-31499269/internal/gateway"
	"github.com/Heshmert/P2-31499269/internal/logger"
	"github.com/Heshmert/P2-31499269/internal/models"
	"github.com/Heshmert/P2-31499269/internal/repositories"
)

// SubmitContactInput carries one validated contact-form submission.
type SubmitContactInput struct {
	Name         string
	Email        string
	Body         string
	ClientIP     string
	CaptchaToken string
}

// SubmitContactResult reports what the submission produced, so the
// handler can word the flash message.
type SubmitContactResult struct {
	Contact    *models.Contact
	Message    *models.Message
	NewContact bool
	EmailSent  bool
}

type ContactService interface {
	// Submit verifies the captcha, geolocates the client best-effort,
	// finds or creates the Contact and appends a Pending message. The
	// confirmation email is best-effort: its failure never fails the
	// submission. Captcha errors pass through as gateway sentinels.
	Submit(ctx context.Context, input SubmitContactInput) (*SubmitContactResult, error)

	AllContacts() ([]models.Contact, error)
	MessagesByStatus(status models.MessageStatus) ([]models.Message, error)
	MessageCountByContact(contactID uint) (int64, error)
}

type ContactServiceImpl struct {
	contactRepo repositories.ContactRepository
	messageRepo repositories.MessageRepository
	captcha     gateway.CaptchaVerifier
	geo         gateway.GeoLocator
	mailer      Mailer
}

func NewContactService(
	contactRepo repositories.ContactRepository,
	messageRepo repositories.MessageRepository,
	captcha gateway.CaptchaVerifier,
	geo gateway.GeoLocator,
	mailer Mailer,
) ContactService {
	return &ContactServiceImpl{
		contactRepo: contactRepo,
		messageRepo: messageRepo,
		captcha:     captcha,
		geo:         geo,
		mailer:      mailer,
	}
}

func (s *ContactServiceImpl) Submit(ctx context.Context, input SubmitContactInput) (*SubmitContactResult, error) {
	// Captcha first: nothing is persisted for a submission that fails
	// the robot check.
	if err := s.captcha.Verify(ctx, input.CaptchaToken, input.ClientIP); err != nil {
		return nil, err
	}

	country, err := s.geo.CountryForIP(ctx, input.ClientIP)
	if err != nil {
		logger.Warn("geolocation failed, defaulting country",
			"ip", input.ClientIP, "error", err)
		country = gateway.UnknownCountry
	}

	newContact := false
	contact, err := s.contactRepo.FindByEmail(input.Email)
	if err != nil {
		if !errors.Is(err, repositories.ErrContactNotFound) {
			return nil, err
		}
		contact = &models.Contact{
			Name:     input.Name,
			Email:    input.Email,
			Country:  country,
			ClientIP: input.ClientIP,
		}
		if err := s.contactRepo.Create(contact); err != nil {
			return nil, err
		}
		newContact = true
	}

	msg := &models.Message{
		ContactID: contact.ID,
		Body:      input.Body,
		Status:    models.MessageStatusPending,
	}
	if err := s.messageRepo.Create(msg); err != nil {
		return nil, err
	}

	emailSent := true
	if err := s.mailer.SendContactConfirmation(contact, input.Body, time.Now()); err != nil {
		logger.Error("failed to send contact confirmation email",
			"email", contact.Email, "error", err)
		emailSent = false
	}

	return &SubmitContactResult{
		Contact:    contact,
		Message:    msg,
		NewContact: newContact,
		EmailSent:  emailSent,
	}, nil
}

func (s *ContactServiceImpl) AllContacts() ([]models.Contact, error) {
	return s.contactRepo.FindAll()
}

func (s *ContactServiceImpl) MessagesByStatus(status models.MessageStatus) ([]models.Message, error) {
	return s.messageRepo.FindByStatus(status)
}

func (s *ContactServiceImpl) MessageCountByContact(contactID uint) (int64, error) {
	return s.messageRepo.CountByContact(contactID)
}
