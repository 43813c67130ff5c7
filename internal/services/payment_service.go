package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Heshmert/P2-31499269/internal/gateway"
	"github.com/Heshmert/P2-31499269/internal/logger"
	"github.com/Heshmert/P2-31499269/internal/models"
	"github.com/Heshmert/P2-31499269/internal/repositories"

	"github.com/google/uuid"
)

// ErrGatewayUnreachable marks a transport-level failure talking to the
// payment processor.
var ErrGatewayUnreachable = errors.New("payment gateway unreachable")

// DeclinedError is a charge the gateway processed but rejected,
// including the HTTP-200-with-logical-failure case.
type DeclinedError struct {
	GatewayMessage string
}

func (e *DeclinedError) Error() string {
	if e.GatewayMessage == "" {
		return "payment declined"
	}
	return "payment declined: " + e.GatewayMessage
}

// ProcessPaymentInput is one validated payment-form submission. Amount
// has already been parsed and checked positive by the handler.
type ProcessPaymentInput struct {
	Service     string
	Email       string
	CardName    string
	CardNumber  string
	ExpiryMonth string
	ExpiryYear  string
	CVC         string
	Amount      float64
	Currency    string
}

type PaymentService interface {
	// Process charges the card through the gateway and persists one
	// Payment row for the attempt whatever the outcome. On failure the
	// returned error is ErrGatewayUnreachable, *DeclinedError or
	// *gateway.MalformedResponseError; the row is still written, with
	// the locally generated reference.
	Process(ctx context.Context, input ProcessPaymentInput) (*models.Payment, error)

	AllPayments() ([]models.Payment, error)
}

type PaymentServiceImpl struct {
	paymentRepo repositories.PaymentRepository
	gateway     gateway.PaymentGateway
	mailer      Mailer
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	gw gateway.PaymentGateway,
	mailer Mailer,
) PaymentService {
	return &PaymentServiceImpl{paymentRepo: paymentRepo, gateway: gw, mailer: mailer}
}

func (s *PaymentServiceImpl) Process(ctx context.Context, input ProcessPaymentInput) (*models.Payment, error) {
	// The reference exists before the remote call so a row can be
	// written even when the gateway never returns an id.
	reference := newPaymentReference()
	description := "Pago por servicio: " + input.Service

	req := gateway.ChargeRequest{
		Amount:          fmt.Sprintf("%.2f", input.Amount),
		CardNumber:      normalizeCardNumber(input.CardNumber),
		CVV:             input.CVC,
		ExpirationMonth: padExpiryMonth(input.ExpiryMonth),
		ExpirationYear:  input.ExpiryYear,
		FullName:        input.CardName,
		Currency:        input.Currency,
		Description:     description,
		Reference:       reference,
	}

	result, err := s.gateway.Charge(ctx, req)
	if err != nil {
		var malformed *gateway.MalformedResponseError
		var rawResponse *string
		if errors.As(err, &malformed) {
			rawResponse = &malformed.Raw
		} else {
			err = fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
		}
		payment := s.recordAttempt(reference, input, description,
			models.PaymentStatusFailed, rawResponse)
		return payment, err
	}

	// The gateway can answer HTTP 200 with a logical failure, so both
	// conditions gate the completed status.
	if result.HTTPOK && result.Success {
		transactionID := result.TransactionID
		if transactionID == "" {
			transactionID = reference
		}
		if err := s.mailer.SendPaymentReceipt(
			input.Email, input.CardName, transactionID,
			input.Amount, input.Currency, description,
		); err != nil {
			logger.Error("failed to send payment receipt email",
				"email", input.Email, "transaction_id", transactionID, "error", err)
		}
		payment := s.recordAttempt(transactionID, input, description,
			models.PaymentStatusCompleted, &result.RawBody)
		return payment, nil
	}

	payment := s.recordAttempt(reference, input, description,
		models.PaymentStatusFailed, &result.RawBody)
	return payment, &DeclinedError{GatewayMessage: result.Message}
}

// recordAttempt writes the audit row. A persistence failure here is
// logged but not surfaced: the charge outcome already happened and is
// what the user must be told about.
func (s *PaymentServiceImpl) recordAttempt(
	transactionID string,
	input ProcessPaymentInput,
	description string,
	status models.PaymentStatus,
	rawResponse *string,
) *models.Payment {
	payment := &models.Payment{
		TransactionID: transactionID,
		Amount:        input.Amount,
		Currency:      input.Currency,
		Status:        status,
		BuyerEmail:    input.Email,
		Description:   description,
		APIResponse:   rawResponse,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		logger.Error("failed to persist payment record",
			"transaction_id", transactionID, "status", status, "error", err)
	}
	return payment
}

func (s *PaymentServiceImpl) AllPayments() ([]models.Payment, error) {
	return s.paymentRepo.FindAll()
}

func newPaymentReference() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("payment_id_%d_%s", time.Now().UnixMilli(), suffix)
}

func normalizeCardNumber(number string) string {
	replacer := strings.NewReplacer(" ", "", "-", "")
	return replacer.Replace(number)
}

func padExpiryMonth(month string) string {
	if len(month) == 1 {
		return "0" + month
	}
	return month
}
