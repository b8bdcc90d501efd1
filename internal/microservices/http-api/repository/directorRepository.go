package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type DirectorRepository interface {
	Create(ctx context.Context, d *models.Director) error
	Update(ctx context.Context, d *models.Director) error
	Delete(ctx context.Context, id int64) error
	GetBySlug(ctx context.Context, slug string) (*models.Director, error)
	GetByName(ctx context.Context, name string) (*models.Director, error)
	List(ctx context.Context) ([]models.Director, error)
}

type directorRepository struct {
	db *gorm.DB
}

func NewDirectorRepository(db *gorm.DB) DirectorRepository {
	return &directorRepository{db: db}
}

func (r *directorRepository) Create(ctx context.Context, d *models.Director) error {
	if err := r.db.WithContext(ctx).Omit("Movies").Create(d).Error; err != nil {
		return fmt.Errorf("create director: %w", translate(err))
	}
	return nil
}

func (r *directorRepository) Update(ctx context.Context, d *models.Director) error {
	if err := r.db.WithContext(ctx).Omit("Movies").Save(d).Error; err != nil {
		return fmt.Errorf("update director: %w", translate(err))
	}
	return nil
}

// Delete removes a director that no movie points at. Directors that still
// have movies are protected.
func (r *directorRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Movie{}).Where("director_id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("count director movies: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("delete director: %w", ErrProtected)
		}

		result := tx.Delete(&models.Director{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete director: %w", translate(result.Error))
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("delete director: %w", ErrNotFound)
		}
		return nil
	})
}

func (r *directorRepository) GetBySlug(ctx context.Context, slug string) (*models.Director, error) {
	var d models.Director
	if err := r.db.WithContext(ctx).Where("slugged_name = ?", slug).First(&d).Error; err != nil {
		return nil, fmt.Errorf("get director by slug: %w", translate(err))
	}
	return &d, nil
}

func (r *directorRepository) GetByName(ctx context.Context, name string) (*models.Director, error) {
	var d models.Director
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&d).Error; err != nil {
		return nil, fmt.Errorf("get director by name: %w", translate(err))
	}
	return &d, nil
}

func (r *directorRepository) List(ctx context.Context) ([]models.Director, error) {
	var list []models.Director
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list directors: %w", err)
	}
	return list, nil
}
