package repositories

import (
	"errors"
	"time"

	"github.com/Heshmert/P2-31499269/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	Create(msg *models.Message) error
	FindByID(id uint) (*models.Message, error)
	FindByStatus(status models.MessageStatus) ([]models.Message, error)
	// MarkAnswered flips a Pending message to Respondido and sets the
	// reply fields in a single conditional update. It returns the number
	// of rows affected: 0 means the message was already answered (or
	// raced with another reply) and nothing changed.
	MarkAnswered(id uint, reply, repliedBy string, repliedAt time.Time) (int64, error)
	CountByContact(contactID uint) (int64, error)
}

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(msg *models.Message) error {
	return r.db.Create(msg).Error
}

func (r *MessageRepositoryImpl) FindByID(id uint) (*models.Message, error) {
	var msg models.Message
	if err := r.db.Preload("Contact").First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

func (r *MessageRepositoryImpl) FindByStatus(status models.MessageStatus) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.Preload("Contact").
		Where("status = ?", status).
		Order("timestamp DESC").
		Find(&msgs).Error
	return msgs, err
}

func (r *MessageRepositoryImpl) MarkAnswered(id uint, reply, repliedBy string, repliedAt time.Time) (int64, error) {
	result := r.db.Model(&models.Message{}).
		Where("id = ? AND status = ?", id, models.MessageStatusPending).
		Updates(map[string]interface{}{
			"status":       models.MessageStatusAnswered,
			"replyMessage": reply,
			"repliedBy":    repliedBy,
			"repliedAt":    repliedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *MessageRepositoryImpl) CountByContact(contactID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Where("contactId = ?", contactID).Count(&count).Error
	return count, err
}
