package services

import (
	"context"
	"time"

	"github.com/Heshmert/P2-31499269/internal/gateway"
	"github.com/Heshmert/P2-31499269/internal/models"
)

// Function-field mocks: each test overrides only the calls it cares
// about.

type mockContactRepo struct {
	createFunc      func(contact *models.Contact) error
	findByEmailFunc func(email string) (*models.Contact, error)
	findAllFunc     func() ([]models.Contact, error)
}

func (m *mockContactRepo) Create(contact *models.Contact) error {
	if m.createFunc != nil {
		return m.createFunc(contact)
	}
	contact.ID = 1
	return nil
}

func (m *mockContactRepo) FindByEmail(email string) (*models.Contact, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(email)
	}
	return nil, nil
}

func (m *mockContactRepo) FindAll() ([]models.Contact, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc()
	}
	return nil, nil
}

type mockMessageRepo struct {
	createFunc       func(msg *models.Message) error
	findByIDFunc     func(id uint) (*models.Message, error)
	findByStatusFunc func(status models.MessageStatus) ([]models.Message, error)
	markAnsweredFunc func(id uint, reply, repliedBy string, repliedAt time.Time) (int64, error)
	countFunc        func(contactID uint) (int64, error)
}

func (m *mockMessageRepo) Create(msg *models.Message) error {
	if m.createFunc != nil {
		return m.createFunc(msg)
	}
	msg.ID = 1
	return nil
}

func (m *mockMessageRepo) FindByID(id uint) (*models.Message, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(id)
	}
	return nil, nil
}

func (m *mockMessageRepo) FindByStatus(status models.MessageStatus) ([]models.Message, error) {
	if m.findByStatusFunc != nil {
		return m.findByStatusFunc(status)
	}
	return nil, nil
}

func (m *mockMessageRepo) MarkAnswered(id uint, reply, repliedBy string, repliedAt time.Time) (int64, error) {
	if m.markAnsweredFunc != nil {
		return m.markAnsweredFunc(id, reply, repliedBy, repliedAt)
	}
	return 1, nil
}

func (m *mockMessageRepo) CountByContact(contactID uint) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(contactID)
	}
	return 0, nil
}

type mockPaymentRepo struct {
	createFunc func(payment *models.Payment) error
	created    []*models.Payment
}

func (m *mockPaymentRepo) Create(payment *models.Payment) error {
	m.created = append(m.created, payment)
	if m.createFunc != nil {
		return m.createFunc(payment)
	}
	return nil
}

func (m *mockPaymentRepo) FindByTransactionID(transactionID string) (*models.Payment, error) {
	return nil, nil
}

func (m *mockPaymentRepo) FindAll() ([]models.Payment, error) {
	return nil, nil
}

type mockUserRepo struct {
	createFunc         func(user *models.User) error
	findByIDFunc       func(id uint) (*models.User, error)
	findByUsernameFunc func(username string) (*models.User, error)
	findByGoogleIDFunc func(googleID string) (*models.User, error)
}

func (m *mockUserRepo) Create(user *models.User) error {
	if m.createFunc != nil {
		return m.createFunc(user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepo) FindByID(id uint) (*models.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByUsername(username string) (*models.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(username)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByGoogleID(googleID string) (*models.User, error) {
	if m.findByGoogleIDFunc != nil {
		return m.findByGoogleIDFunc(googleID)
	}
	return nil, nil
}

type mockCaptcha struct {
	verifyFunc func(ctx context.Context, token, remoteIP string) error
}

func (m *mockCaptcha) Verify(ctx context.Context, token, remoteIP string) error {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, token, remoteIP)
	}
	return nil
}

type mockGeo struct {
	countryFunc func(ctx context.Context, ip string) (string, error)
}

func (m *mockGeo) CountryForIP(ctx context.Context, ip string) (string, error) {
	if m.countryFunc != nil {
		return m.countryFunc(ctx, ip)
	}
	return "Venezuela", nil
}

type mockGateway struct {
	chargeFunc func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error)
	lastReq    gateway.ChargeRequest
}

func (m *mockGateway) Charge(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
	m.lastReq = req
	if m.chargeFunc != nil {
		return m.chargeFunc(ctx, req)
	}
	return &gateway.ChargeResult{HTTPOK: true, Success: true, TransactionID: "tx-1"}, nil
}

type mockMailer struct {
	confirmationFunc func(contact *models.Contact, body string, sentAt time.Time) error
	replyFunc        func(to, name, originalMessage, reply, repliedBy string) error
	receiptFunc      func(to, name, transactionID string, amount float64, currency, description string) error

	confirmations int
	replies       int
	receipts      int
}

func (m *mockMailer) SendContactConfirmation(contact *models.Contact, body string, sentAt time.Time) error {
	m.confirmations++
	if m.confirmationFunc != nil {
		return m.confirmationFunc(contact, body, sentAt)
	}
	return nil
}

func (m *mockMailer) SendAdminReply(to, name, originalMessage, reply, repliedBy string) error {
	m.replies++
	if m.replyFunc != nil {
		return m.replyFunc(to, name, originalMessage, reply, repliedBy)
	}
	return nil
}

func (m *mockMailer) SendPaymentReceipt(to, name, transactionID string, amount float64, currency, description string) error {
	m.receipts++
	if m.receiptFunc != nil {
		return m.receiptFunc(to, name, transactionID, amount, currency, description)
	}
	return nil
}
