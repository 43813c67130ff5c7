package models

import "time"

// User is a dashboard account. PasswordHash is nil for accounts that
// only ever logged in through Google; GoogleID is nil for local ones.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash *string   `gorm:"column:password_hash"`
	GoogleID     *string   `gorm:"column:google_id;uniqueIndex"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (User) TableName() string { return "users" }

// IsAdmin reports whether the account carries the admin role.
// Authorization rides on this claim, never on the username.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
