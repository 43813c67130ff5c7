// Package gateway holds the raw HTTP clients for the external services
// the site depends on: Google reCAPTCHA, the fake payment processor and
// the ip-api geolocation endpoint. No SDKs, plain JSON over HTTP.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Captcha verification failures the UI distinguishes. Anything else
// (transport error, unknown error code, missing secret) collapses into
// a generic verification failure: the check fails closed.
var (
	ErrCaptchaMissing   = errors.New("captcha token missing")
	ErrCaptchaInvalid   = errors.New("captcha token invalid or expired")
	ErrCaptchaDuplicate = errors.New("captcha token expired or already used")
	ErrCaptchaFailed    = errors.New("captcha verification failed")
)

// CaptchaVerifier checks a client-supplied reCAPTCHA token. A nil error
// means the token verified.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type RecaptchaVerifier struct {
	secretKey  string
	verifyURL  string
	httpClient *http.Client
}

func NewRecaptchaVerifier(secretKey string) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		secretKey:  secretKey,
		verifyURL:  recaptchaVerifyURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewRecaptchaVerifierWithURL points the verifier at a non-default
// endpoint. Used by tests.
func NewRecaptchaVerifierWithURL(secretKey, verifyURL string) *RecaptchaVerifier {
	v := NewRecaptchaVerifier(secretKey)
	v.verifyURL = verifyURL
	return v
}

type recaptchaResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (v *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	if v.secretKey == "" {
		return fmt.Errorf("%w: secret key not configured", ErrCaptchaFailed)
	}
	if token == "" {
		return ErrCaptchaMissing
	}

	form := url.Values{}
	form.Set("secret", v.secretKey)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaptchaFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaptchaFailed, err)
	}
	defer resp.Body.Close()

	var body recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", ErrCaptchaFailed, err)
	}

	if body.Success {
		return nil
	}

	for _, code := range body.ErrorCodes {
		switch code {
		case "missing-input-response":
			return ErrCaptchaMissing
		case "invalid-input-response":
			return ErrCaptchaInvalid
		case "timeout-or-duplicate":
			return ErrCaptchaDuplicate
		}
	}
	return ErrCaptchaFailed
}
