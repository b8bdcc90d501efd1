package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/slug"
)

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrUnknownActor  = errors.New("unknown actor")
)

const maxTitleLength = 200

// MovieInput carries every field of a new movie. Director and actors are
// referenced by name, genres are created on first use.
type MovieInput struct {
	Title        string
	Synopsis     string
	ReleaseDate  time.Time
	Country      models.Country
	DirectorName string
	ActorNames   []string
	Genres       []string
	Poster       *media.Upload
}

// MovieUpdate changes only the fields that are set.
type MovieUpdate struct {
	Title        *string
	Synopsis     *string
	ReleaseDate  *time.Time
	Country      *models.Country
	DirectorName *string
	ActorNames   *[]string
	Genres       *[]string
	Poster       *media.Upload
}

// MovieDetail is everything the movie page shows.
type MovieDetail struct {
	Movie         *models.Movie
	AverageRating float64
	RatingCount   int64
	Reviews       []models.Review
	// UserRating is the viewer's own rating, nil when anonymous or unrated.
	UserRating *models.Rating
}

type MovieService interface {
	List(ctx context.Context) ([]models.Movie, error)
	ListByGenre(ctx context.Context, genreSlug string) (*models.Genre, []models.Movie, error)
	GetBySlug(ctx context.Context, slug string) (*models.Movie, error)
	GetDetail(ctx context.Context, slug, viewerID string) (*MovieDetail, error)
	Create(ctx context.Context, in MovieInput) (*models.Movie, error)
	Update(ctx context.Context, slug string, in MovieUpdate) (*models.Movie, error)
	Delete(ctx context.Context, slug string) error
}

type movieService struct {
	repo      repository.MovieRepository
	directors repository.DirectorRepository
	actors    repository.ActorRepository
	genres    repository.GenreRepository
	ratings   repository.RatingRepository
	reviews   repository.ReviewRepository
	media     MediaStore
}

func NewMovieService(
	repo repository.MovieRepository,
	directors repository.DirectorRepository,
	actors repository.ActorRepository,
	genres repository.GenreRepository,
	ratings repository.RatingRepository,
	reviews repository.ReviewRepository,
	store MediaStore,
) MovieService {
	return &movieService{
		repo:      repo,
		directors: directors,
		actors:    actors,
		genres:    genres,
		ratings:   ratings,
		reviews:   reviews,
		media:     store,
	}
}

func (s *movieService) List(ctx context.Context) ([]models.Movie, error) {
	return s.repo.List(ctx)
}

func (s *movieService) ListByGenre(ctx context.Context, genreSlug string) (*models.Genre, []models.Movie, error) {
	g, err := s.genres.GetBySlug(ctx, genreSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrGenreNotFound
		}
		return nil, nil, err
	}
	movies, err := s.repo.ListByGenre(ctx, g.ID)
	if err != nil {
		return nil, nil, err
	}
	return g, movies, nil
}

func (s *movieService) GetBySlug(ctx context.Context, slug string) (*models.Movie, error) {
	m, err := s.repo.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrMovieNotFound
	}
	return m, err
}

func (s *movieService) GetDetail(ctx context.Context, slug, viewerID string) (*MovieDetail, error) {
	m, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	detail := &MovieDetail{Movie: m}
	if detail.AverageRating, err = s.ratings.CalculateAverageRating(ctx, m.ID); err != nil {
		return nil, err
	}
	if detail.RatingCount, err = s.ratings.CountRatings(ctx, m.ID); err != nil {
		return nil, err
	}
	if detail.Reviews, err = s.reviews.ListByMovie(ctx, m.ID); err != nil {
		return nil, err
	}
	if viewerID != "" {
		r, err := s.ratings.GetByUserAndMovie(ctx, viewerID, m.ID)
		switch {
		case err == nil:
			detail.UserRating = r
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}
	return detail, nil
}

func (s *movieService) Create(ctx context.Context, in MovieInput) (*models.Movie, error) {
	m := &models.Movie{
		Title:       strings.TrimSpace(in.Title),
		Synopsis:    strings.TrimSpace(in.Synopsis),
		ReleaseDate: in.ReleaseDate,
		Country:     in.Country,
	}
	if err := validateMovie(m); err != nil {
		return nil, err
	}
	if err := s.resolveDirector(ctx, m, in.DirectorName); err != nil {
		return nil, err
	}
	if err := s.resolveActors(ctx, m, in.ActorNames); err != nil {
		return nil, err
	}
	if err := s.resolveGenres(ctx, m, in.Genres); err != nil {
		return nil, err
	}

	var err error
	if in.Poster != nil {
		if m.Poster, err = s.media.Save(ctx, media.KindPoster, in.Poster); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, m); err != nil {
		discardMedia(ctx, s.media, m.Poster)
		return nil, err
	}
	return m, nil
}

func (s *movieService) Update(ctx context.Context, slug string, in MovieUpdate) (*models.Movie, error) {
	m, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		m.Title = strings.TrimSpace(*in.Title)
	}
	if in.Synopsis != nil {
		m.Synopsis = strings.TrimSpace(*in.Synopsis)
	}
	if in.ReleaseDate != nil {
		m.ReleaseDate = *in.ReleaseDate
	}
	if in.Country != nil {
		m.Country = *in.Country
	}
	if err := validateMovie(m); err != nil {
		return nil, err
	}
	if in.DirectorName != nil {
		if err := s.resolveDirector(ctx, m, *in.DirectorName); err != nil {
			return nil, err
		}
	}
	if in.ActorNames != nil {
		if err := s.resolveActors(ctx, m, *in.ActorNames); err != nil {
			return nil, err
		}
	}
	if in.Genres != nil {
		if err := s.resolveGenres(ctx, m, *in.Genres); err != nil {
			return nil, err
		}
	}

	oldPoster := m.Poster
	if in.Poster != nil {
		if m.Poster, err = s.media.Save(ctx, media.KindPoster, in.Poster); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, m); err != nil {
		if m.Poster != oldPoster {
			discardMedia(ctx, s.media, m.Poster)
		}
		return nil, err
	}
	if m.Poster != oldPoster {
		discardMedia(ctx, s.media, oldPoster)
	}
	return m, nil
}

func (s *movieService) Delete(ctx context.Context, slug string) error {
	m, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, m.ID); err != nil {
		return err
	}
	discardMedia(ctx, s.media, m.Poster)
	return nil
}

func validateMovie(m *models.Movie) error {
	switch {
	case m.Title == "":
		return errors.New("title is required")
	case utf8.RuneCountInString(m.Title) > maxTitleLength:
		return fmt.Errorf("title cannot be longer than %d characters", maxTitleLength)
	case slug.Make(m.Title) == "":
		return fmt.Errorf("title %q has no URL-safe characters", m.Title)
	case m.Synopsis == "":
		return errors.New("synopsis is required")
	case m.ReleaseDate.IsZero():
		return errors.New("release date is required")
	case !m.Country.Valid():
		return fmt.Errorf("%w: %q", models.ErrInvalidCountry, m.Country)
	}
	return nil
}

func (s *movieService) resolveDirector(ctx context.Context, m *models.Movie, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("director is required")
	}
	d, err := s.directors.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrDirectorNotFound, name)
		}
		return err
	}
	m.DirectorID = d.ID
	m.Director = d
	return nil
}

func (s *movieService) resolveActors(ctx context.Context, m *models.Movie, names []string) error {
	names = cleanNames(names)
	actors, err := s.actors.GetByNames(ctx, names)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w in %s", ErrUnknownActor, strings.Join(names, ", "))
		}
		return err
	}
	m.Actors = actors
	return nil
}

func (s *movieService) resolveGenres(ctx context.Context, m *models.Movie, names []string) error {
	names = cleanNames(names)
	genres := make([]models.Genre, 0, len(names))
	seen := make(map[int64]bool, len(names))
	for _, name := range names {
		g, err := s.genres.FindOrCreate(ctx, name)
		if err != nil {
			return fmt.Errorf("genre %q: %w", name, err)
		}
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		genres = append(genres, *g)
	}
	m.Genres = genres
	return nil
}

// cleanNames trims entries and drops blanks and repeats.
func cleanNames(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, n := range in {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
