package models

type MessageStatus string
type PaymentStatus string
type UserRole string

const (
	// Status literals are kept exactly as the views and the existing
	// database rows expect them.
	MessageStatusPending  MessageStatus = "Pending"
	MessageStatusAnswered MessageStatus = "Respondido"

	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"

	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)
