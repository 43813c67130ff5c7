package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Heshmert/P2-31499269/internal/models"
	"github.com/Heshmert/P2-31499269/internal/repositories"
)

// AdminDisplayName is the fixed author recorded on replies.
const AdminDisplayName = "Admin"

var (
	ErrMessageNotFound        = errors.New("message not found")
	ErrMessageAlreadyAnswered = errors.New("message already answered")
	ErrEmptyReply             = errors.New("reply text is empty")
	// ErrReplyEmailFailed wraps the mail error. The message stays
	// Pending: a reply the submitter never received must not be
	// recorded as sent.
	ErrReplyEmailFailed = errors.New("failed to send reply email")
)

type ReplyService interface {
	Reply(messageID uint, replyText string) error
}

type ReplyServiceImpl struct {
	messageRepo repositories.MessageRepository
	mailer      Mailer
}

func NewReplyService(messageRepo repositories.MessageRepository, mailer Mailer) ReplyService {
	return &ReplyServiceImpl{messageRepo: messageRepo, mailer: mailer}
}

// Reply answers a Pending message: it emails the submitter first and
// only then flips the row to Respondido, so a failed send never marks a
// message as answered. The status change is a single conditional update
// checked by affected-row count, which also closes the window where two
// concurrent replies both saw the message as Pending.
func (s *ReplyServiceImpl) Reply(messageID uint, replyText string) error {
	if replyText == "" {
		return ErrEmptyReply
	}

	msg, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	if msg.Status != models.MessageStatusPending {
		return ErrMessageAlreadyAnswered
	}

	if err := s.mailer.SendAdminReply(
		msg.Contact.Email,
		msg.Contact.Name,
		msg.Body,
		replyText,
		AdminDisplayName,
	); err != nil {
		return fmt.Errorf("%w: %v", ErrReplyEmailFailed, err)
	}

	affected, err := s.messageRepo.MarkAnswered(messageID, replyText, AdminDisplayName, time.Now())
	if err != nil {
		return err
	}
	if affected == 0 {
		// Another reply landed between our read and the update.
		return ErrMessageAlreadyAnswered
	}
	return nil
}
