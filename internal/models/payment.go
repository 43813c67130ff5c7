package models

import "time"

// Payment records one charge attempt against the payment gateway. A row
// is written for every attempt, failed ones included, so the table is an
// audit trail. TransactionID is generated locally before the gateway
// call; on success the gateway's own id replaces it when available.
type Payment struct {
	ID            uint          `gorm:"primaryKey"`
	TransactionID string        `gorm:"column:transactionId;uniqueIndex"`
	Amount        float64       `gorm:"not null"`
	Currency      string        `gorm:"type:varchar(10);not null"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null"`
	BuyerEmail    string        `gorm:"column:buyerEmail"`
	Description   string
	APIResponse   *string   `gorm:"column:apiResponse"`
	CreatedAt     time.Time `gorm:"column:timestamp"`
}

func (Payment) TableName() string { return "payments" }
