package models

import (
	"time"

	"gorm.io/gorm"

	"moviehub/internal/slug"
)

type Director struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:200;uniqueIndex;not null"`
	SluggedName string    `json:"slugged_name" gorm:"size:300;uniqueIndex;not null"`
	Photo       string    `json:"photo"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Movies []Movie `json:"movies,omitempty" gorm:"foreignKey:DirectorID"`
}

// BeforeSave keeps the slug in step with the name on every insert and update.
func (d *Director) BeforeSave(tx *gorm.DB) error {
	d.SluggedName = slug.Make(d.Name)
	return nil
}

func (d Director) String() string {
	return d.Name
}

func (Director) TableName() string {
	return "directors"
}
