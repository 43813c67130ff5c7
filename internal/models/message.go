package models

import "time"

// Message is a single contact-form submission tied to a Contact. The
// reply fields are all-or-nothing: they are set together when an admin
// answers and the status moves Pending -> Respondido, which is terminal.
type Message struct {
	ID        uint          `gorm:"primaryKey"`
	ContactID uint          `gorm:"column:contactId;not null;index"`
	Body      string        `gorm:"column:message;not null"`
	Status    MessageStatus `gorm:"type:varchar(20);not null;default:'Pending'"`

	ReplyMessage *string    `gorm:"column:replyMessage"`
	RepliedAt    *time.Time `gorm:"column:repliedAt"`
	RepliedBy    *string    `gorm:"column:repliedBy"`

	CreatedAt time.Time `gorm:"column:timestamp"`

	Contact Contact `gorm:"foreignKey:ContactID"`
}

func (Message) TableName() string { return "messages" }
