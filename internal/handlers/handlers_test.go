package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Heshmert/P2-31499269/internal/gateway"
	"github.com/Heshmert/P2-31499269/internal/models"
	"github.com/Heshmert/P2-31499269/internal/services"
	"github.com/Heshmert/P2-31499269/internal/validator"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContactService struct {
	submitFunc func(ctx context.Context, input services.SubmitContactInput) (*services.SubmitContactResult, error)
	lastInput  services.SubmitContactInput
}

func (s *stubContactService) Submit(ctx context.Context, input services.SubmitContactInput) (*services.SubmitContactResult, error) {
	s.lastInput = input
	if s.submitFunc != nil {
		return s.submitFunc(ctx, input)
	}
	return &services.SubmitContactResult{
		Contact: &models.Contact{ID: 1, Email: input.Email},
		Message: &models.Message{ID: 1},
	}, nil
}

func (s *stubContactService) AllContacts() ([]models.Contact, error) { return nil, nil }

func (s *stubContactService) MessagesByStatus(status models.MessageStatus) ([]models.Message, error) {
	return nil, nil
}

func (s *stubContactService) MessageCountByContact(contactID uint) (int64, error) { return 0, nil }

type stubPaymentService struct {
	processFunc func(ctx context.Context, input services.ProcessPaymentInput) (*models.Payment, error)
	lastInput   services.ProcessPaymentInput
}

func (s *stubPaymentService) Process(ctx context.Context, input services.ProcessPaymentInput) (*models.Payment, error) {
	s.lastInput = input
	if s.processFunc != nil {
		return s.processFunc(ctx, input)
	}
	return &models.Payment{TransactionID: "tx-1", Status: models.PaymentStatusCompleted}, nil
}

func (s *stubPaymentService) AllPayments() ([]models.Payment, error) { return nil, nil }

type stubReplyService struct {
	replyFunc func(messageID uint, replyText string) error
}

func (s *stubReplyService) Reply(messageID uint, replyText string) error {
	if s.replyFunc != nil {
		return s.replyFunc(messageID, replyText)
	}
	return nil
}

func newTestRouter() (*gin.Engine, *BaseHandler) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))
	return r, NewBaseHandler(validator.New())
}

func postForm(r *gin.Engine, path string, form url.Values, extraHeaders map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestContactSubmit_RedirectsOnSuccess(t *testing.T) {
	r, base := newTestRouter()
	svc := &stubContactService{}
	h := NewContactHandler(base, svc, "site-key")
	r.POST("/contacto", h.Submit)

	form := url.Values{
		"name":                 {"Ana"},
		"email":                {"ana@example.com"},
		"message":              {"Hola"},
		"g-recaptcha-response": {"token"},
	}
	w := postForm(r, "/contacto", form, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/contacto", w.Header().Get("Location"))
	assert.Equal(t, "token", svc.lastInput.CaptchaToken)
}

func TestContactSubmit_ForwardedForWins(t *testing.T) {
	r, base := newTestRouter()
	svc := &stubContactService{}
	h := NewContactHandler(base, svc, "site-key")
	r.POST("/contacto", h.Submit)

	form := url.Values{
		"name":    {"Ana"},
		"email":   {"ana@example.com"},
		"message": {"Hola"},
	}
	postForm(r, "/contacto", form, map[string]string{
		"X-Forwarded-For": "190.200.1.1, 10.0.0.1",
	})

	assert.Equal(t, "190.200.1.1", svc.lastInput.ClientIP)
}

func TestContactSubmit_CaptchaFailureRedirectsBack(t *testing.T) {
	r, base := newTestRouter()
	svc := &stubContactService{
		submitFunc: func(ctx context.Context, input services.SubmitContactInput) (*services.SubmitContactResult, error) {
			return nil, gateway.ErrCaptchaMissing
		},
	}
	h := NewContactHandler(base, svc, "site-key")
	r.POST("/contacto", h.Submit)

	form := url.Values{
		"name":    {"Ana"},
		"email":   {"ana@example.com"},
		"message": {"Hola"},
	}
	w := postForm(r, "/contacto", form, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/contacto", w.Header().Get("Location"))
}

func TestContactSubmit_InvalidEmailNeverReachesService(t *testing.T) {
	r, base := newTestRouter()
	called := false
	svc := &stubContactService{
		submitFunc: func(ctx context.Context, input services.SubmitContactInput) (*services.SubmitContactResult, error) {
			called = true
			return nil, nil
		},
	}
	h := NewContactHandler(base, svc, "site-key")
	r.POST("/contacto", h.Submit)

	form := url.Values{
		"name":    {"Ana"},
		"email":   {"no-es-un-email"},
		"message": {"Hola"},
	}
	w := postForm(r, "/contacto", form, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.False(t, called)
}

func TestPaymentSubmit_ParsesAmount(t *testing.T) {
	r, base := newTestRouter()
	svc := &stubPaymentService{}
	h := NewPaymentHandler(base, svc)
	r.POST("/payment", h.Submit)

	form := url.Values{
		"service":      {"Mantenimiento básico"},
		"email":        {"cliente@example.com"},
		"card_name":    {"Cliente"},
		"card_number":  {"4111111111111111"},
		"expiry_month": {"3"},
		"expiry_year":  {"2030"},
		"cvc":          {"123"},
		"amount":       {"49.90"},
		"currency":     {"USD"},
	}
	w := postForm(r, "/payment", form, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.InDelta(t, 49.90, svc.lastInput.Amount, 0.001)
	assert.Equal(t, "Mantenimiento básico", svc.lastInput.Service)
}

func TestPaymentSubmit_RejectsNonPositiveAmount(t *testing.T) {
	r, base := newTestRouter()
	called := false
	svc := &stubPaymentService{
		processFunc: func(ctx context.Context, input services.ProcessPaymentInput) (*models.Payment, error) {
			called = true
			return nil, nil
		},
	}
	h := NewPaymentHandler(base, svc)
	r.POST("/payment", h.Submit)

	for _, amount := range []string{"0", "-5", "abc", "NaN", "nan", "Inf", "+Inf", "-Inf"} {
		form := url.Values{
			"service":      {"Mantenimiento básico"},
			"email":        {"cliente@example.com"},
			"card_name":    {"Cliente"},
			"card_number":  {"4111111111111111"},
			"expiry_month": {"3"},
			"expiry_year":  {"2030"},
			"cvc":          {"123"},
			"amount":       {amount},
			"currency":     {"USD"},
		}
		w := postForm(r, "/payment", form, nil)
		assert.Equal(t, http.StatusFound, w.Code, "amount %q", amount)
	}
	assert.False(t, called)
}

func TestAdminSendReply_InvalidIDRedirects(t *testing.T) {
	r, base := newTestRouter()
	h := NewAdminHandler(base, &stubContactService{}, &stubPaymentService{}, &stubReplyService{})
	r.POST("/admin/replies/send/:messageId", h.SendReply)

	form := url.Values{"replyMessage": {"hola"}}
	w := postForm(r, "/admin/replies/send/abc", form, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestAdminSendReply_ServiceErrorsRedirect(t *testing.T) {
	cases := []error{
		services.ErrMessageNotFound,
		services.ErrMessageAlreadyAnswered,
		services.ErrReplyEmailFailed,
	}

	for _, svcErr := range cases {
		r, base := newTestRouter()
		replySvc := &stubReplyService{
			replyFunc: func(messageID uint, replyText string) error {
				return svcErr
			},
		}
		h := NewAdminHandler(base, &stubContactService{}, &stubPaymentService{}, replySvc)
		r.POST("/admin/replies/send/:messageId", h.SendReply)

		form := url.Values{"replyMessage": {"hola"}}
		w := postForm(r, "/admin/replies/send/5", form, nil)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin", w.Header().Get("Location"))
	}
}

func TestAdminSendReply_Success(t *testing.T) {
	r, base := newTestRouter()
	var gotID uint
	var gotText string
	replySvc := &stubReplyService{
		replyFunc: func(messageID uint, replyText string) error {
			gotID = messageID
			gotText = replyText
			return nil
		},
	}
	h := NewAdminHandler(base, &stubContactService{}, &stubPaymentService{}, replySvc)
	r.POST("/admin/replies/send/:messageId", h.SendReply)

	form := url.Values{"replyMessage": {"Sí, hacemos envíos."}}
	w := postForm(r, "/admin/replies/send/5", form, nil)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, uint(5), gotID)
	assert.Equal(t, "Sí, hacemos envíos.", gotText)
}

func TestReplyErrorMessages(t *testing.T) {
	assert.Equal(t, "El mensaje no existe.", replyErrorMessage(services.ErrMessageNotFound))
	assert.Equal(t, "Este mensaje ya fue respondido.", replyErrorMessage(services.ErrMessageAlreadyAnswered))
	assert.Contains(t, replyErrorMessage(services.ErrReplyEmailFailed), "sigue pendiente")
}

func TestPaymentErrorMessages(t *testing.T) {
	declined := &services.DeclinedError{GatewayMessage: "Fondos insuficientes"}
	assert.Equal(t, "Error en el pago: Fondos insuficientes", paymentErrorMessage(declined))

	empty := &services.DeclinedError{}
	assert.Equal(t, "Error en el pago: Transacción rechazada.", paymentErrorMessage(empty))

	malformed := &gateway.MalformedResponseError{Raw: "<html>boom</html>"}
	assert.Contains(t, paymentErrorMessage(malformed), "formato inesperado")
	assert.Contains(t, paymentErrorMessage(malformed), "<html>boom</html>")

	assert.Equal(t, "Error al procesar el pago. Inténtalo de nuevo más tarde.",
		paymentErrorMessage(services.ErrGatewayUnreachable))
}
