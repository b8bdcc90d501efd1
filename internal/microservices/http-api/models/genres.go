package models

import (
	"gorm.io/gorm"

	"moviehub/internal/slug"
)

// Genre is a free-form tag attached to movies.
type Genre struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"size:100;uniqueIndex;not null"`

	Movies []Movie `json:"movies,omitempty" gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE;"`
}

func (g *Genre) BeforeSave(tx *gorm.DB) error {
	g.Slug = slug.Make(g.Name)
	return nil
}

func (Genre) TableName() string {
	return "genres"
}
