package models

import "time"

const MaxReviewLength = 2000

type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	MovieID   int64     `json:"movie_id" gorm:"not null;index"`
	Body      string    `json:"body" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Movie Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
