package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepository interface {
	Create(ctx context.Context, m *models.Movie) error
	Update(ctx context.Context, m *models.Movie) error
	Delete(ctx context.Context, id int64) error
	GetBySlug(ctx context.Context, slug string) (*models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
	ListByGenre(ctx context.Context, genreID int64) ([]models.Movie, error)
	ListByDirector(ctx context.Context, directorID int64) ([]models.Movie, error)
	ListByActor(ctx context.Context, actorID int64) ([]models.Movie, error)
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

// Create inserts the movie and links the already persisted actors and genres
// it carries. The director is referenced by DirectorID only.
func (r *movieRepository) Create(ctx context.Context, m *models.Movie) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return err
		}
		return replaceLinks(tx, m)
	})
	if err != nil {
		return fmt.Errorf("create movie: %w", translate(err))
	}
	return nil
}

// Update saves the movie columns and replaces its cast and genres.
func (r *movieRepository) Update(ctx context.Context, m *models.Movie) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return err
		}
		return replaceLinks(tx, m)
	})
	if err != nil {
		return fmt.Errorf("update movie: %w", translate(err))
	}
	return nil
}

// replaceLinks points the movie's join rows at exactly m.Actors and m.Genres.
func replaceLinks(tx *gorm.DB, m *models.Movie) error {
	actors, genres := m.Actors, m.Genres
	if len(actors) == 0 {
		if err := tx.Model(m).Association("Actors").Clear(); err != nil {
			return err
		}
	} else if err := tx.Model(m).Association("Actors").Replace(actors); err != nil {
		return err
	}
	if len(genres) == 0 {
		return tx.Model(m).Association("Genres").Clear()
	}
	return tx.Model(m).Association("Genres").Replace(genres)
}

// Delete removes the movie, its cast and genre links. Ratings and reviews
// go with it through their foreign keys.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, q := range []string{
			"DELETE FROM movie_actors WHERE movie_id = ?",
			"DELETE FROM movie_genres WHERE movie_id = ?",
			"DELETE FROM ratings WHERE movie_id = ?",
			"DELETE FROM reviews WHERE movie_id = ?",
		} {
			if err := tx.Exec(q, id).Error; err != nil {
				return fmt.Errorf("delete movie relations: %w", err)
			}
		}
		result := tx.Delete(&models.Movie{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete movie: %w", translate(result.Error))
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("delete movie: %w", ErrNotFound)
		}
		return nil
	})
}

func (r *movieRepository) detailed(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Director").
		Preload("Actors", func(db *gorm.DB) *gorm.DB { return db.Order("actors.name asc") }).
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name asc") })
}

func (r *movieRepository) GetBySlug(ctx context.Context, slug string) (*models.Movie, error) {
	var m models.Movie
	if err := r.detailed(ctx).Where("movies.slug = ?", slug).First(&m).Error; err != nil {
		return nil, fmt.Errorf("get movie by slug: %w", translate(err))
	}
	return &m, nil
}

func (r *movieRepository) listed(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Preload("Director").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name asc") }).
		Order("movies.title asc")
}

func (r *movieRepository) List(ctx context.Context) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.listed(ctx).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return list, nil
}

func (r *movieRepository) ListByGenre(ctx context.Context, genreID int64) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.listed(ctx).
		Joins("JOIN movie_genres mg ON mg.movie_id = movies.id").
		Where("mg.genre_id = ?", genreID).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list movies by genre: %w", err)
	}
	return list, nil
}

func (r *movieRepository) ListByDirector(ctx context.Context, directorID int64) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.listed(ctx).Where("movies.director_id = ?", directorID).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list movies by director: %w", err)
	}
	return list, nil
}

func (r *movieRepository) ListByActor(ctx context.Context, actorID int64) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.listed(ctx).
		Joins("JOIN movie_actors ma ON ma.movie_id = movies.id").
		Where("ma.actor_id = ?", actorID).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list movies by actor: %w", err)
	}
	return list, nil
}
