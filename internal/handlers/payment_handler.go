package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/Heshmert/P2-31499269/internal/gateway"
	"github.com/Heshmert/P2-31499269/internal/logger"
	"github.com/Heshmert/P2-31499269/internal/services"

	"github.com/gin-gonic/gin"
)

type PaymentForm struct {
	Service     string `form:"service" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	CardName    string `form:"card_name" validate:"required,max=100"`
	CardNumber  string `form:"card_number" validate:"required"`
	ExpiryMonth string `form:"expiry_month" validate:"required,max=2"`
	ExpiryYear  string `form:"expiry_year" validate:"required,len=4"`
	CVC         string `form:"cvc" validate:"required,min=3,max=4"`
	Amount      string `form:"amount" validate:"required"`
	Currency    string `form:"currency" validate:"required,len=3"`
}

type PaymentHandler struct {
	*BaseHandler
	payments services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, payments services.PaymentService) *PaymentHandler {
	return &PaymentHandler{BaseHandler: base, payments: payments}
}

func (h *PaymentHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "payment.html", h.TemplateData(c, gin.H{
		"Title": "Pagos - Ciclexpress",
	}))
}

func (h *PaymentHandler) Submit(c *gin.Context) {
	var form PaymentForm
	if err := h.BindForm(c, &form); err != nil {
		h.FlashValidation(c, err)
		c.Redirect(http.StatusFound, "/payment")
		return
	}

	// ParseFloat accepts "NaN" and "Inf" without error; neither may
	// reach the gateway or the payments table.
	amount, err := strconv.ParseFloat(form.Amount, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		h.Flash(c, flashError, "El monto debe ser un número positivo.")
		c.Redirect(http.StatusFound, "/payment")
		return
	}

	payment, err := h.payments.Process(c.Request.Context(), services.ProcessPaymentInput{
		Service:     form.Service,
		Email:       form.Email,
		CardName:    form.CardName,
		CardNumber:  form.CardNumber,
		ExpiryMonth: form.ExpiryMonth,
		ExpiryYear:  form.ExpiryYear,
		CVC:         form.CVC,
		Amount:      amount,
		Currency:    form.Currency,
	})
	if err != nil {
		logger.FromContext(c.Request.Context()).Warn("payment attempt failed",
			"email", form.Email, "error", err)
		h.Flash(c, flashError, paymentErrorMessage(err))
		c.Redirect(http.StatusFound, "/payment")
		return
	}

	h.Flash(c, flashSuccess, fmt.Sprintf(
		"¡Pago realizado con éxito! Transacción: %s. Te hemos enviado un correo con los detalles.",
		payment.TransactionID))
	c.Redirect(http.StatusFound, "/payment")
}

func paymentErrorMessage(err error) string {
	var declined *services.DeclinedError
	if errors.As(err, &declined) {
		msg := declined.GatewayMessage
		if msg == "" {
			msg = "Transacción rechazada."
		}
		return "Error en el pago: " + msg
	}

	var malformed *gateway.MalformedResponseError
	if errors.As(err, &malformed) {
		return fmt.Sprintf(
			"Error en el pago: la pasarela devolvió un formato inesperado. (Respuesta: %s)",
			malformed.Raw)
	}

	return "Error al procesar el pago. Inténtalo de nuevo más tarde."
}
