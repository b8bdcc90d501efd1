package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.Rating, error)
	CalculateAverageRating(ctx context.Context, movieID int64) (float64, error)
	CountRatings(ctx context.Context, movieID int64) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert stores the user's rating for a movie, replacing an earlier one.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).
		Create(rating).Error
	if err != nil {
		return fmt.Errorf("save rating: %w", translate(err))
	}
	return nil
}

// GetByUserAndMovie retrieves a user's rating for a specific movie
func (r *ratingRepository) GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&rating).Error
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", translate(err))
	}
	return &rating, nil
}

// CalculateAverageRating calculates the average rating for a movie
func (r *ratingRepository) CalculateAverageRating(ctx context.Context, movieID int64) (float64, error) {
	var avg struct {
		Average float64
	}

	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0) as average").
		Where("movie_id = ?", movieID).
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}

	return avg.Average, nil
}

// CountRatings counts the total number of ratings for a movie
func (r *ratingRepository) CountRatings(ctx context.Context, movieID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Where("movie_id = ?", movieID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return count, nil
}
