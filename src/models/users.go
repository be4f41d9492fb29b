package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	Username   string    `gorm:"column:username" json:"username"`
	Password   string    `gorm:"column:password" json:"-"`
	FirstName  string    `gorm:"column:first_name" json:"firstName"`
	LastName   string    `gorm:"column:last_name" json:"lastName"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	ModifiedAt time.Time `gorm:"column:modified_at;autoUpdateTime" json:"modifiedAt"`
}

func (User) TableName() string {
	return "app_users"
}

// ResetPasswordCode is the single outstanding password reset code of a user.
type ResetPasswordCode struct {
	UserID    uuid.UUID `gorm:"primaryKey;column:user_id;type:uuid"`
	Code      string    `gorm:"column:code"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
}

func (ResetPasswordCode) TableName() string {
	return "reset_password_codes"
}

// Expired reports whether the code can no longer be used at now.
func (c ResetPasswordCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
