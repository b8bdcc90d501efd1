package service

import (
	"context"
	"errors"

	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

type DirectorService interface {
	Create(ctx context.Context, name string, photo *media.Upload) (*models.Director, error)
	Rename(ctx context.Context, slug, newName string) (*models.Director, error)
	SetPhoto(ctx context.Context, slug string, photo *media.Upload) (*models.Director, error)
	Delete(ctx context.Context, slug string) error
	List(ctx context.Context) ([]models.Director, error)
	// GetPage returns the director with their movies ordered by title.
	GetPage(ctx context.Context, slug string) (*models.Director, []models.Movie, error)
}

type directorService struct {
	repo   repository.DirectorRepository
	movies repository.MovieRepository
	media  MediaStore
}

func NewDirectorService(repo repository.DirectorRepository, movies repository.MovieRepository, store MediaStore) DirectorService {
	return &directorService{repo: repo, movies: movies, media: store}
}

func (s *directorService) Create(ctx context.Context, name string, photo *media.Upload) (*models.Director, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	d := &models.Director{Name: name}
	if photo != nil {
		if d.Photo, err = s.media.Save(ctx, media.KindDirectorPhoto, photo); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, d); err != nil {
		discardMedia(ctx, s.media, d.Photo)
		return nil, err
	}
	return d, nil
}

func (s *directorService) get(ctx context.Context, slug string) (*models.Director, error) {
	d, err := s.repo.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrDirectorNotFound
	}
	return d, err
}

// Rename changes the name; the slug follows on save.
func (s *directorService) Rename(ctx context.Context, slug, newName string) (*models.Director, error) {
	name, err := validateName(newName)
	if err != nil {
		return nil, err
	}
	d, err := s.get(ctx, slug)
	if err != nil {
		return nil, err
	}
	d.Name = name
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *directorService) SetPhoto(ctx context.Context, slug string, photo *media.Upload) (*models.Director, error) {
	d, err := s.get(ctx, slug)
	if err != nil {
		return nil, err
	}
	old := d.Photo
	if d.Photo, err = s.media.Save(ctx, media.KindDirectorPhoto, photo); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		discardMedia(ctx, s.media, d.Photo)
		return nil, err
	}
	discardMedia(ctx, s.media, old)
	return d, nil
}

// Delete refuses while any movie still references the director.
func (s *directorService) Delete(ctx context.Context, slug string) error {
	d, err := s.get(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, d.ID); err != nil {
		if errors.Is(err, repository.ErrProtected) {
			return ErrHasMovies
		}
		return err
	}
	discardMedia(ctx, s.media, d.Photo)
	return nil
}

func (s *directorService) List(ctx context.Context) ([]models.Director, error) {
	return s.repo.List(ctx)
}

func (s *directorService) GetPage(ctx context.Context, slug string) (*models.Director, []models.Movie, error) {
	d, err := s.get(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	movies, err := s.movies.ListByDirector(ctx, d.ID)
	if err != nil {
		return nil, nil, err
	}
	return d, movies, nil
}
