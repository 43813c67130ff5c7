package handlers

import (
	"strings"

	"github.com/Heshmert/P2-31499269/internal/logger"
	"github.com/Heshmert/P2-31499269/internal/middleware"
	"github.com/Heshmert/P2-31499269/internal/validator"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	flashError   = "error"
	flashSuccess = "success"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindForm binds the POST form into obj and validates it. The returned
// error is *validator.ValidationError for field problems; the caller
// flashes it and redirects back.
func (h *BaseHandler) BindForm(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBind(obj); err != nil {
		logger.FromContext(c.Request.Context()).Warn("failed to bind form",
			"path", c.Request.URL.Path, "error", err)
		return err
	}
	return h.validator.Validate(obj)
}

// Flash queues a one-shot message for the next rendered page.
func (h *BaseHandler) Flash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, category)
	if err := session.Save(); err != nil {
		logger.FromContext(c.Request.Context()).Error("failed to save session flash",
			"error", err)
	}
}

// FlashValidation turns a binding or validation failure into a single
// error flash.
func (h *BaseHandler) FlashValidation(c *gin.Context, err error) {
	if vErr, ok := err.(*validator.ValidationError); ok {
		h.Flash(c, flashError, vErr.Messages())
		return
	}
	h.Flash(c, flashError, "Los datos enviados no son válidos.")
}

// TemplateData builds the common render context: flashes (consumed
// here), the session user and any page-specific extras.
func (h *BaseHandler) TemplateData(c *gin.Context, extra gin.H) gin.H {
	session := sessions.Default(c)
	data := gin.H{
		"Errors":    flashStrings(session.Flashes(flashError)),
		"Successes": flashStrings(session.Flashes(flashSuccess)),
	}
	if err := session.Save(); err != nil {
		logger.FromContext(c.Request.Context()).Error("failed to save session",
			"error", err)
	}
	if user, ok := middleware.UserFromContext(c); ok {
		data["User"] = user
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// ClientIP prefers the first hop of X-Forwarded-For, matching how the
// site runs behind a reverse proxy in production.
func ClientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if first, _, found := strings.Cut(fwd, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	return c.ClientIP()
}

func flashStrings(flashes []interface{}) []string {
	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
