package handlers

import (
	"errors"
	"net/http"

	"github.com/Heshmert/P2-31499269/internal/gateway"
	"github.com/Heshmert/P2-31499269/internal/logger"
	"github.com/Heshmert/P2-31499269/internal/services"

	"github.com/gin-gonic/gin"
)

type ContactForm struct {
	Name         string `form:"name" validate:"required,max=100"`
	Email        string `form:"email" validate:"required,email"`
	Message      string `form:"message" validate:"required,max=2000"`
	CaptchaToken string `form:"g-recaptcha-response"`
}

type ContactHandler struct {
	*BaseHandler
	contacts         services.ContactService
	recaptchaSiteKey string
}

func NewContactHandler(base *BaseHandler, contacts services.ContactService, recaptchaSiteKey string) *ContactHandler {
	return &ContactHandler{
		BaseHandler:      base,
		contacts:         contacts,
		recaptchaSiteKey: recaptchaSiteKey,
	}
}

func (h *ContactHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contacto.html", h.TemplateData(c, gin.H{
		"Title":            "Contacto - Ciclexpress",
		"RecaptchaSiteKey": h.recaptchaSiteKey,
	}))
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var form ContactForm
	if err := h.BindForm(c, &form); err != nil {
		h.FlashValidation(c, err)
		c.Redirect(http.StatusFound, "/contacto")
		return
	}

	_, err := h.contacts.Submit(c.Request.Context(), services.SubmitContactInput{
		Name:         form.Name,
		Email:        form.Email,
		Body:         form.Message,
		ClientIP:     ClientIP(c),
		CaptchaToken: form.CaptchaToken,
	})
	if err != nil {
		h.Flash(c, flashError, contactErrorMessage(err))
		if !isCaptchaError(err) {
			logger.FromContext(c.Request.Context()).Error("contact submission failed",
				"email", form.Email, "error", err)
		}
		c.Redirect(http.StatusFound, "/contacto")
		return
	}

	h.Flash(c, flashSuccess,
		"Tu mensaje ha sido enviado correctamente. Te hemos enviado un correo de confirmación.")
	c.Redirect(http.StatusFound, "/contacto")
}

// Each captcha failure mode gets its own wording so the visitor knows
// whether to retry or reload.
func contactErrorMessage(err error) string {
	switch {
	case errors.Is(err, gateway.ErrCaptchaMissing):
		return "Por favor, completa el reCAPTCHA antes de enviar el formulario."
	case errors.Is(err, gateway.ErrCaptchaInvalid):
		return "La verificación del reCAPTCHA no es válida. Inténtalo de nuevo."
	case errors.Is(err, gateway.ErrCaptchaDuplicate):
		return "El reCAPTCHA ha expirado o ya fue utilizado. Recarga la página e inténtalo de nuevo."
	case errors.Is(err, gateway.ErrCaptchaFailed):
		return "No se pudo verificar el reCAPTCHA. Inténtalo de nuevo más tarde."
	default:
		return "Ocurrió un error al enviar tu mensaje. Inténtalo de nuevo más tarde."
	}
}

func isCaptchaError(err error) bool {
	return errors.Is(err, gateway.ErrCaptchaMissing) ||
		errors.Is(err, gateway.ErrCaptchaInvalid) ||
		errors.Is(err, gateway.ErrCaptchaDuplicate) ||
		errors.Is(err, gateway.ErrCaptchaFailed)
}
