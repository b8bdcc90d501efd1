package service

import (
	"context"
	"errors"
	"strings"

	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

var ErrGenreNotFound = errors.New("genre not found")

type GenreService interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	ListUsed(ctx context.Context) ([]models.Genre, error)
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	Create(ctx context.Context, g *models.Genre) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(r repository.GenreRepository) GenreService {
	return &genreService{repo: r}
}

func (s *genreService) GetAll(ctx context.Context) ([]models.Genre, error) {
	return s.repo.GetAll(ctx)
}

// ListUsed returns the genres shown on the index page.
func (s *genreService) ListUsed(ctx context.Context) ([]models.Genre, error) {
	return s.repo.ListUsed(ctx)
}

func (s *genreService) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	g, err := s.repo.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGenreNotFound
	}
	return g, err
}

func (s *genreService) Create(ctx context.Context, g *models.Genre) error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("genre name required")
	}
	g.Name = strings.TrimSpace(g.Name)
	return s.repo.Create(ctx, g)
}
