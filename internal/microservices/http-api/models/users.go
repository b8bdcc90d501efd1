package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string     `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	Image     string     `json:"image,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
