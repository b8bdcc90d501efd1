package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

func TestRatingService_Rate(t *testing.T) {
	ctx := context.Background()
	movie := &models.Movie{ID: 1, Slug: "heat"}

	t.Run("Bounds", func(t *testing.T) {
		for _, v := range []int{0, 10} {
			ratings := new(MockRatingRepository)
			movies := new(MockMovieRepository)
			svc := NewRatingService(ratings, movies)
			movies.On("GetBySlug", ctx, "heat").Return(movie, nil)
			ratings.On("Upsert", ctx, mock.MatchedBy(func(r *models.Rating) bool {
				return r.UserID == "u-1" && r.MovieID == 1 && r.Value == v
			})).Return(nil)

			m, err := svc.Rate(ctx, "u-1", "heat", v)
			require.NoError(t, err)
			assert.Equal(t, "heat", m.Slug)
			ratings.AssertExpectations(t)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		for _, v := range []int{-1, 11} {
			ratings := new(MockRatingRepository)
			movies := new(MockMovieRepository)
			svc := NewRatingService(ratings, movies)
			movies.On("GetBySlug", ctx, "heat").Return(movie, nil)

			m, err := svc.Rate(ctx, "u-1", "heat", v)
			assert.ErrorIs(t, err, ErrInvalidRating)
			assert.NotNil(t, m)
			ratings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		}
	})

	t.Run("UnknownMovie", func(t *testing.T) {
		movies := new(MockMovieRepository)
		svc := NewRatingService(new(MockRatingRepository), movies)
		movies.On("GetBySlug", ctx, "nope").Return(nil, repository.ErrNotFound)

		_, err := svc.Rate(ctx, "u-1", "nope", 5)
		assert.ErrorIs(t, err, ErrMovieNotFound)
	})
}

func TestReviewService_Publish(t *testing.T) {
	ctx := context.Background()
	movie := &models.Movie{ID: 1, Slug: "heat"}

	t.Run("Success", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		movies := new(MockMovieRepository)
		svc := NewReviewService(reviews, movies)
		movies.On("GetBySlug", ctx, "heat").Return(movie, nil)
		reviews.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(nil)

		_, r, err := svc.Publish(ctx, "u-1", "heat", "  Brilliant heist movie.  ")
		require.NoError(t, err)
		assert.Equal(t, "Brilliant heist movie.", r.Body)
		assert.Equal(t, int64(1), r.MovieID)
	})

	t.Run("Empty", func(t *testing.T) {
		movies := new(MockMovieRepository)
		svc := NewReviewService(new(MockReviewRepository), movies)
		movies.On("GetBySlug", ctx, "heat").Return(movie, nil)

		m, _, err := svc.Publish(ctx, "u-1", "heat", "   ")
		assert.ErrorIs(t, err, ErrEmptyReview)
		assert.Equal(t, movie, m)
	})

	t.Run("TooLong", func(t *testing.T) {
		movies := new(MockMovieRepository)
		svc := NewReviewService(new(MockReviewRepository), movies)
		movies.On("GetBySlug", ctx, "heat").Return(movie, nil)

		_, _, err := svc.Publish(ctx, "u-1", "heat", strings.Repeat("a", models.MaxReviewLength+1))
		assert.ErrorIs(t, err, ErrReviewTooLong)
	})
}
