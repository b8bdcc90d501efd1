package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ActorRepository interface {
	Create(ctx context.Context, a *models.Actor) error
	Update(ctx context.Context, a *models.Actor) error
	Delete(ctx context.Context, id int64) error
	GetBySlug(ctx context.Context, slug string) (*models.Actor, error)
	GetByNames(ctx context.Context, names []string) ([]models.Actor, error)
	List(ctx context.Context) ([]models.Actor, error)
}

type actorRepository struct {
	db *gorm.DB
}

func NewActorRepository(db *gorm.DB) ActorRepository {
	return &actorRepository{db: db}
}

func (r *actorRepository) Create(ctx context.Context, a *models.Actor) error {
	if err := r.db.WithContext(ctx).Omit("Movies").Create(a).Error; err != nil {
		return fmt.Errorf("create actor: %w", translate(err))
	}
	return nil
}

func (r *actorRepository) Update(ctx context.Context, a *models.Actor) error {
	if err := r.db.WithContext(ctx).Omit("Movies").Save(a).Error; err != nil {
		return fmt.Errorf("update actor: %w", translate(err))
	}
	return nil
}

// Delete removes the actor together with its cast entries.
func (r *actorRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM movie_actors WHERE actor_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete actor cast entries: %w", err)
		}
		result := tx.Delete(&models.Actor{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete actor: %w", translate(result.Error))
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("delete actor: %w", ErrNotFound)
		}
		return nil
	})
}

func (r *actorRepository) GetBySlug(ctx context.Context, slug string) (*models.Actor, error) {
	var a models.Actor
	if err := r.db.WithContext(ctx).Where("slugged_name = ?", slug).First(&a).Error; err != nil {
		return nil, fmt.Errorf("get actor by slug: %w", translate(err))
	}
	return &a, nil
}

// GetByNames loads the named actors. Unknown names are reported as ErrNotFound.
func (r *actorRepository) GetByNames(ctx context.Context, names []string) ([]models.Actor, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var list []models.Actor
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get actors by name: %w", err)
	}
	if len(list) != len(uniqueStrings(names)) {
		return nil, fmt.Errorf("get actors by name: %w", ErrNotFound)
	}
	return list, nil
}

func (r *actorRepository) List(ctx context.Context) ([]models.Actor, error) {
	var list []models.Actor
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	return list, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
