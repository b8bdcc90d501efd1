package models

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"moviehub/internal/slug"
)

// Country is the two-letter production country code of a movie.
type Country string

const (
	CountryUnitedStates  Country = "US"
	CountryUnitedKingdom Country = "UK"
	CountryPoland        Country = "PL"
	CountryCanada        Country = "CA"
	CountryItaly         Country = "IT"
	CountryJapan         Country = "JP"
	CountryChina         Country = "CN"
)

// Countries lists the accepted codes in display order.
var Countries = []Country{
	CountryUnitedStates,
	CountryUnitedKingdom,
	CountryPoland,
	CountryCanada,
	CountryItaly,
	CountryJapan,
	CountryChina,
}

var countryLabels = map[Country]string{
	CountryUnitedStates:  "United States",
	CountryUnitedKingdom: "United Kingdom",
	CountryPoland:        "Poland",
	CountryCanada:        "Canada",
	CountryItaly:         "Italy",
	CountryJapan:         "Japan",
	CountryChina:         "China",
}

var ErrInvalidCountry = errors.New("invalid country code")

func (c Country) Valid() bool {
	_, ok := countryLabels[c]
	return ok
}

// Label returns the display name, or the raw code when it is unknown.
func (c Country) Label() string {
	if l, ok := countryLabels[c]; ok {
		return l
	}
	return string(c)
}

type Movie struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"size:200;uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"size:300;uniqueIndex;not null"`
	Synopsis    string    `json:"synopsis" gorm:"type:text;not null"`
	ReleaseDate time.Time `json:"release_date" gorm:"type:date;not null"`
	Country     Country   `json:"country" gorm:"size:2;not null"`
	Poster      string    `json:"poster"`
	DirectorID  int64     `json:"director_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Director *Director `json:"director,omitempty" gorm:"foreignKey:DirectorID;constraint:OnDelete:RESTRICT;"`
	Actors   []Actor   `json:"actors,omitempty" gorm:"many2many:movie_actors;constraint:OnDelete:CASCADE;"`
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE;"`
}

func (m *Movie) BeforeSave(tx *gorm.DB) error {
	if !m.Country.Valid() {
		return ErrInvalidCountry
	}
	m.Slug = slug.Make(m.Title)
	return nil
}

func (m Movie) String() string {
	return m.Title
}

func (Movie) TableName() string {
	return "movies"
}
