package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/slug"

	"gorm.io/gorm"
)

type GenreRepository interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	ListUsed(ctx context.Context) ([]models.Genre, error)
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	Create(ctx context.Context, g *models.Genre) error
	FindOrCreate(ctx context.Context, name string) (*models.Genre, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) GetAll(ctx context.Context) ([]models.Genre, error) {
	var list []models.Genre
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return list, nil
}

// ListUsed returns the genres attached to at least one movie, each once,
// ordered by name.
func (r *genreRepository) ListUsed(ctx context.Context) ([]models.Genre, error) {
	var list []models.Genre
	used := r.db.Table("movie_genres").Select("genre_id")
	if err := r.db.WithContext(ctx).
		Where("id IN (?)", used).
		Order("name asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get used genres: %w", err)
	}
	return list, nil
}

func (r *genreRepository) GetBySlug(ctx context.Context, s string) (*models.Genre, error) {
	var g models.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", s).First(&g).Error; err != nil {
		return nil, fmt.Errorf("get genre by slug: %w", translate(err))
	}
	return &g, nil
}

func (r *genreRepository) Create(ctx context.Context, g *models.Genre) error {
	if err := r.db.WithContext(ctx).Omit("Movies").Create(g).Error; err != nil {
		return fmt.Errorf("create genre: %w", translate(err))
	}
	return nil
}

// FindOrCreate returns the genre whose slug matches name, creating it when
// missing. "Sci-Fi" and "sci fi" resolve to the same genre.
func (r *genreRepository) FindOrCreate(ctx context.Context, name string) (*models.Genre, error) {
	name = strings.TrimSpace(name)
	g, err := r.GetBySlug(ctx, slug.Make(name))
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	g = &models.Genre{Name: name}
	if err := r.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}
