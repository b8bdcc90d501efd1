package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/models"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockMediaStore mocks MediaStore
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Save(ctx context.Context, kind media.Kind, u *media.Upload) (string, error) {
	args := m.Called(ctx, kind, u)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStore) Delete(rel string) error {
	args := m.Called(rel)
	return args.Error(0)
}

type MockDirectorRepository struct {
	mock.Mock
}

func (m *MockDirectorRepository) Create(ctx context.Context, d *models.Director) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDirectorRepository) Update(ctx context.Context, d *models.Director) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDirectorRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDirectorRepository) GetBySlug(ctx context.Context, slug string) (*models.Director, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Director), args.Error(1)
}

func (m *MockDirectorRepository) GetByName(ctx context.Context, name string) (*models.Director, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Director), args.Error(1)
}

func (m *MockDirectorRepository) List(ctx context.Context) ([]models.Director, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Director), args.Error(1)
}

type MockActorRepository struct {
	mock.Mock
}

func (m *MockActorRepository) Create(ctx context.Context, a *models.Actor) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockActorRepository) Update(ctx context.Context, a *models.Actor) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockActorRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockActorRepository) GetBySlug(ctx context.Context, slug string) (*models.Actor, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Actor), args.Error(1)
}

func (m *MockActorRepository) GetByNames(ctx context.Context, names []string) ([]models.Actor, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Actor), args.Error(1)
}

func (m *MockActorRepository) List(ctx context.Context) ([]models.Actor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Actor), args.Error(1)
}

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *MockMovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *MockMovieRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMovieRepository) GetBySlug(ctx context.Context, slug string) (*models.Movie, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieRepository) movies(args mock.Arguments) ([]models.Movie, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *MockMovieRepository) List(ctx context.Context) ([]models.Movie, error) {
	return m.movies(m.Called(ctx))
}

func (m *MockMovieRepository) ListByGenre(ctx context.Context, genreID int64) ([]models.Movie, error) {
	return m.movies(m.Called(ctx, genreID))
}

func (m *MockMovieRepository) ListByDirector(ctx context.Context, directorID int64) ([]models.Movie, error) {
	return m.movies(m.Called(ctx, directorID))
}

func (m *MockMovieRepository) ListByActor(ctx context.Context, actorID int64) ([]models.Movie, error) {
	return m.movies(m.Called(ctx, actorID))
}

type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) GetAll(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) ListUsed(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) Create(ctx context.Context, g *models.Genre) error {
	return m.Called(ctx, g).Error(0)
}

func (m *MockGenreRepository) FindOrCreate(ctx context.Context, name string) (*models.Genre, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *MockRatingRepository) GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.Rating, error) {
	args := m.Called(ctx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) CalculateAverageRating(ctx context.Context, movieID int64) (float64, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRatingRepository) CountRatings(ctx context.Context, movieID int64) (int64, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(int64), args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) ListByMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}
