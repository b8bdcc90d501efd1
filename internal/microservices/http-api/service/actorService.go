package service

import (
	"context"
	"errors"

	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

type ActorService interface {
	Create(ctx context.Context, name string, photo *media.Upload) (*models.Actor, error)
	Rename(ctx context.Context, slug, newName string) (*models.Actor, error)
	SetPhoto(ctx context.Context, slug string, photo *media.Upload) (*models.Actor, error)
	Delete(ctx context.Context, slug string) error
	List(ctx context.Context) ([]models.Actor, error)
	GetPage(ctx context.Context, slug string) (*models.Actor, []models.Movie, error)
}

type actorService struct {
	repo   repository.ActorRepository
	movies repository.MovieRepository
	media  MediaStore
}

func NewActorService(repo repository.ActorRepository, movies repository.MovieRepository, store MediaStore) ActorService {
	return &actorService{repo: repo, movies: movies, media: store}
}

func (s *actorService) Create(ctx context.Context, name string, photo *media.Upload) (*models.Actor, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	a := &models.Actor{Name: name}
	if photo != nil {
		if a.Photo, err = s.media.Save(ctx, media.KindActorPhoto, photo); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, a); err != nil {
		discardMedia(ctx, s.media, a.Photo)
		return nil, err
	}
	return a, nil
}

func (s *actorService) get(ctx context.Context, slug string) (*models.Actor, error) {
	a, err := s.repo.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrActorNotFound
	}
	return a, err
}

func (s *actorService) Rename(ctx context.Context, slug, newName string) (*models.Actor, error) {
	name, err := validateName(newName)
	if err != nil {
		return nil, err
	}
	a, err := s.get(ctx, slug)
	if err != nil {
		return nil, err
	}
	a.Name = name
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *actorService) SetPhoto(ctx context.Context, slug string, photo *media.Upload) (*models.Actor, error) {
	a, err := s.get(ctx, slug)
	if err != nil {
		return nil, err
	}
	old := a.Photo
	if a.Photo, err = s.media.Save(ctx, media.KindActorPhoto, photo); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		discardMedia(ctx, s.media, a.Photo)
		return nil, err
	}
	discardMedia(ctx, s.media, old)
	return a, nil
}

// Delete removes the actor from every cast as well.
func (s *actorService) Delete(ctx context.Context, slug string) error {
	a, err := s.get(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, a.ID); err != nil {
		return err
	}
	discardMedia(ctx, s.media, a.Photo)
	return nil
}

func (s *actorService) List(ctx context.Context) ([]models.Actor, error) {
	return s.repo.List(ctx)
}

func (s *actorService) GetPage(ctx context.Context, slug string) (*models.Actor, []models.Movie, error) {
	a, err := s.get(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	movies, err := s.movies.ListByActor(ctx, a.ID)
	if err != nil {
		return nil, nil, err
	}
	return a, movies, nil
}
