package models

import "time"

const (
	MinRating = 0
	MaxRating = 10
)

// Rating is one user's score for one movie.
type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_movie"`
	MovieID   int64     `json:"movie_id" gorm:"not null;uniqueIndex:idx_ratings_user_movie;index"`
	Value     int       `json:"rating" gorm:"column:rating;not null;check:rating >= 0 AND rating <= 10"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Movie Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}
