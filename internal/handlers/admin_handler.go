package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Heshmert/P2-31499269/internal/logger"
	"github.com/Heshmert/P2-31499269/internal/models"
	"github.com/Heshmert/P2-31499269/internal/services"

	"github.com/gin-gonic/gin"
)

type ReplyForm struct {
	ReplyMessage string `form:"replyMessage" validate:"required"`
}

type AdminHandler struct {
	*BaseHandler
	contacts services.ContactService
	payments services.PaymentService
	replies  services.ReplyService
}

func NewAdminHandler(
	base *BaseHandler,
	contacts services.ContactService,
	payments services.PaymentService,
	replies services.ReplyService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		contacts:    contacts,
		payments:    payments,
		replies:     replies,
	}
}

// Dashboard renders the admin page: every contact, the message queues
// split by status and the payment history.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	log := logger.FromContext(c.Request.Context())

	contacts, err := h.contacts.AllContacts()
	if err != nil {
		log.Error("failed to load contacts", "error", err)
	}
	pending, err := h.contacts.MessagesByStatus(models.MessageStatusPending)
	if err != nil {
		log.Error("failed to load pending messages", "error", err)
	}
	answered, err := h.contacts.MessagesByStatus(models.MessageStatusAnswered)
	if err != nil {
		log.Error("failed to load answered messages", "error", err)
	}
	payments, err := h.payments.AllPayments()
	if err != nil {
		log.Error("failed to load payments", "error", err)
	}

	messageCounts := make(map[uint]int64, len(contacts))
	for _, contact := range contacts {
		count, err := h.contacts.MessageCountByContact(contact.ID)
		if err != nil {
			log.Error("failed to count messages", "contact_id", contact.ID, "error", err)
			continue
		}
		messageCounts[contact.ID] = count
	}

	c.HTML(http.StatusOK, "administracion.html", h.TemplateData(c, gin.H{
		"Title":            "Administración - Ciclexpress",
		"Contacts":         contacts,
		"MessageCounts":    messageCounts,
		"PendingMessages":  pending,
		"AnsweredMessages": answered,
		"Payments":         payments,
	}))
}

func (h *AdminHandler) SendReply(c *gin.Context) {
	messageID, err := strconv.ParseUint(c.Param("messageId"), 10, 32)
	if err != nil {
		h.Flash(c, flashError, "El mensaje no existe.")
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	var form ReplyForm
	if err := h.BindForm(c, &form); err != nil {
		h.Flash(c, flashError, "El mensaje de respuesta no puede estar vacío.")
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	if err := h.replies.Reply(uint(messageID), form.ReplyMessage); err != nil {
		h.Flash(c, flashError, replyErrorMessage(err))
		if !errors.Is(err, services.ErrMessageAlreadyAnswered) &&
			!errors.Is(err, services.ErrMessageNotFound) &&
			!errors.Is(err, services.ErrEmptyReply) {
			logger.FromContext(c.Request.Context()).Error("reply failed",
				"message_id", messageID, "error", err)
		}
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	h.Flash(c, flashSuccess, "Respuesta enviada correctamente.")
	c.Redirect(http.StatusFound, "/admin")
}

func replyErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrEmptyReply):
		return "El mensaje de respuesta no puede estar vacío."
	case errors.Is(err, services.ErrMessageNotFound):
		return "El mensaje no existe."
	case errors.Is(err, services.ErrMessageAlreadyAnswered):
		return "Este mensaje ya fue respondido."
	case errors.Is(err, services.ErrReplyEmailFailed):
		return "No se pudo enviar el correo de respuesta. El mensaje sigue pendiente."
	default:
		return "Ocurrió un error al enviar la respuesta. Inténtalo de nuevo."
	}
}
