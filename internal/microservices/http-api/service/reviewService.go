package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

var (
	ErrEmptyReview   = errors.New("review cannot be empty")
	ErrReviewTooLong = errors.New("review is too long")
)

type ReviewService interface {
	Publish(ctx context.Context, userID, movieSlug, body string) (*models.Movie, *models.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	movieRepo  repository.MovieRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, movieRepo repository.MovieRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		movieRepo:  movieRepo,
	}
}

// Publish adds a review to the movie. The returned movie is set whenever the
// slug resolved, so callers can redirect back to it on validation errors.
func (s *reviewService) Publish(ctx context.Context, userID, movieSlug, body string) (*models.Movie, *models.Review, error) {
	m, err := s.movieRepo.GetBySlug(ctx, movieSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrMovieNotFound
		}
		return nil, nil, err
	}

	body = strings.TrimSpace(body)
	switch {
	case body == "":
		return m, nil, ErrEmptyReview
	case utf8.RuneCountInString(body) > models.MaxReviewLength:
		return m, nil, ErrReviewTooLong
	}

	review := &models.Review{UserID: userID, MovieID: m.ID, Body: body}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return m, nil, err
	}
	return m, review, nil
}
