package models

import "time"

// Contact is one unique person identified by email. A Contact is created
// on the first submission from a given address and never deleted; repeat
// submissions only append Messages.
type Contact struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Country   string
	ClientIP  string    `gorm:"column:clientIp"`
	CreatedAt time.Time `gorm:"column:created_at"`

	Messages []Message `gorm:"foreignKey:ContactID"`
}

func (Contact) TableName() string { return "contacts" }
