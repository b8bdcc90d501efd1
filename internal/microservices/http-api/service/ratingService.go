package service

import (
	"context"
	"errors"

	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

var ErrInvalidRating = errors.New("rating must be between 0 and 10")

type RatingService interface {
	// Rate stores userID's score for the movie, replacing an earlier one.
	Rate(ctx context.Context, userID, movieSlug string, value int) (*models.Movie, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	movieRepo  repository.MovieRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, movieRepo repository.MovieRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		movieRepo:  movieRepo,
	}
}

func (s *ratingService) Rate(ctx context.Context, userID, movieSlug string, value int) (*models.Movie, error) {
	m, err := s.movieRepo.GetBySlug(ctx, movieSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	if value < models.MinRating || value > models.MaxRating {
		return m, ErrInvalidRating
	}

	if err := s.ratingRepo.Upsert(ctx, &models.Rating{
		UserID:  userID,
		MovieID: m.ID,
		Value:   value,
	}); err != nil {
		return nil, err
	}
	return m, nil
}
