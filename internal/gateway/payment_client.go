package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const rawResponseLimit = 100

// ChargeRequest is the payload the fake payment processor expects on
// POST /payments. Field names follow the gateway's wire format.
type ChargeRequest struct {
	Amount          string `json:"amount"`
	CardNumber      string `json:"card-number"`
	CVV             string `json:"cvv"`
	ExpirationMonth string `json:"expiration-month"`
	ExpirationYear  string `json:"expiration-year"`
	FullName        string `json:"full-name"`
	Currency        string `json:"currency"`
	Description     string `json:"description"`
	Reference       string `json:"reference"`
}

// ChargeResult is the parsed gateway response plus the transport facts
// the caller needs to classify the outcome. The gateway can return
// HTTP 200 with Success=false, so both HTTPOK and Success must hold for
// a charge to count as completed.
type ChargeResult struct {
	HTTPOK        bool
	Success       bool
	TransactionID string
	Message       string
	RawBody       string
}

// MalformedResponseError is returned when the gateway answers with
// something that is not JSON. Raw carries a truncated copy of the body
// for the user-facing diagnostic.
type MalformedResponseError struct {
	Raw string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("payment gateway returned a non-JSON response: %s", e.Raw)
}

// PaymentGateway submits card charges to the external processor.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

type PaymentClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewPaymentClient(baseURL, apiKey string) *PaymentClient {
	return &PaymentClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type chargeResponseBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		TransactionID string `json:"transaction_id"`
		Reference     string `json:"reference"`
	} `json:"data"`
}

func (c *PaymentClient) Charge(ctx context.Context, chargeReq ChargeRequest) (*ChargeResult, error) {
	payload, err := json.Marshal(chargeReq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode charge request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/payments", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	var body chargeResponseBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &MalformedResponseError{Raw: truncate(string(raw), rawResponseLimit)}
	}

	transactionID := body.Data.TransactionID
	if transactionID == "" {
		transactionID = body.Data.Reference
	}

	return &ChargeResult{
		HTTPOK:        resp.StatusCode >= 200 && resp.StatusCode < 300,
		Success:       body.Success,
		TransactionID: transactionID,
		Message:       body.Message,
		RawBody:       string(raw),
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
