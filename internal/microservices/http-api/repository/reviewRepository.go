package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListByMovie(ctx context.Context, movieID int64) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", translate(err))
	}
	return nil
}

// ListByMovie returns a movie's reviews, newest first, with their authors.
func (r *reviewRepository) ListByMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).Where("movie_id = ?", movieID).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
