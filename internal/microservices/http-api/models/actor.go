package models

import (
	"time"

	"gorm.io/gorm"

	"moviehub/internal/slug"
)

type Actor struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:200;uniqueIndex;not null"`
	SluggedName string    `json:"slugged_name" gorm:"size:300;uniqueIndex;not null"`
	Photo       string    `json:"photo"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Movies []Movie `json:"movies,omitempty" gorm:"many2many:movie_actors;constraint:OnDelete:CASCADE;"`
}

func (a *Actor) BeforeSave(tx *gorm.DB) error {
	a.SluggedName = slug.Make(a.Name)
	return nil
}

func (a Actor) String() string {
	return a.Name
}

func (Actor) TableName() string {
	return "actors"
}
