package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"moviehub/database"
	"moviehub/internal/microservices/http-api/models"
)

// RepositorySuite runs every repository against a fresh in-memory SQLite
// database per test.
type RepositorySuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context

	directors DirectorRepository
	actors    ActorRepository
	movies    MovieRepository
	genres    GenreRepository
	users     UserRepository
	ratings   RatingRepository
	reviews   ReviewRepository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.New().String())
	db, err := database.Open(database.DriverSQLite, dsn, false)
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db))

	s.db = db
	s.ctx = context.Background()
	s.directors = NewDirectorRepository(db)
	s.actors = NewActorRepository(db)
	s.movies = NewMovieRepository(db)
	s.genres = NewGenreRepository(db)
	s.users = NewUserRepository(db)
	s.ratings = NewRatingRepository(db)
	s.reviews = NewReviewRepository(db)
}

func (s *RepositorySuite) TearDownTest() {
	s.Require().NoError(database.Close(s.db))
}

func (s *RepositorySuite) director(name string) *models.Director {
	d := &models.Director{Name: name}
	s.Require().NoError(s.directors.Create(s.ctx, d))
	return d
}

func (s *RepositorySuite) actor(name string) *models.Actor {
	a := &models.Actor{Name: name}
	s.Require().NoError(s.actors.Create(s.ctx, a))
	return a
}

func (s *RepositorySuite) genre(name string) *models.Genre {
	g, err := s.genres.FindOrCreate(s.ctx, name)
	s.Require().NoError(err)
	return g
}

func (s *RepositorySuite) movie(title string, d *models.Director, genres []models.Genre, actors []models.Actor) *models.Movie {
	m := &models.Movie{
		Title:       title,
		Synopsis:    "synopsis of " + title,
		ReleaseDate: time.Date(2001, 5, 4, 0, 0, 0, 0, time.UTC),
		Country:     models.CountryUnitedStates,
		DirectorID:  d.ID,
		Genres:      genres,
		Actors:      actors,
	}
	s.Require().NoError(s.movies.Create(s.ctx, m))
	return m
}

func (s *RepositorySuite) user(username string) *models.User {
	u := &models.User{Username: username, Email: username + "@example.com", Password: "hash"}
	s.Require().NoError(s.users.Create(s.ctx, u))
	return u
}

func (s *RepositorySuite) TestDirector_SlugFollowsName() {
	d := s.director("Quentin Tarantino")
	s.Equal("quentin-tarantino", d.SluggedName)

	d.Name = "Sofia Coppola"
	s.Require().NoError(s.directors.Update(s.ctx, d))

	got, err := s.directors.GetBySlug(s.ctx, "sofia-coppola")
	s.Require().NoError(err)
	s.Equal(d.ID, got.ID)

	_, err = s.directors.GetBySlug(s.ctx, "quentin-tarantino")
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositorySuite) TestDirector_DuplicateName() {
	s.director("Akira Kurosawa")
	err := s.directors.Create(s.ctx, &models.Director{Name: "Akira Kurosawa"})
	s.ErrorIs(err, ErrDuplicate)
}

func (s *RepositorySuite) TestDirector_SlugCollision() {
	s.director("Heat")

	err := s.directors.Create(s.ctx, &models.Director{Name: "Heat!"})
	s.ErrorIs(err, ErrDuplicate)

	other := s.director("Thief")
	other.Name = "HEAT"
	s.ErrorIs(s.directors.Update(s.ctx, other), ErrDuplicate)

	got, err := s.directors.GetBySlug(s.ctx, "thief")
	s.Require().NoError(err)
	s.Equal("Thief", got.Name)
	list, err := s.directors.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 2)
}

func (s *RepositorySuite) TestActor_SlugCollision() {
	s.actor("Heat")

	err := s.actors.Create(s.ctx, &models.Actor{Name: "Heat!"})
	s.ErrorIs(err, ErrDuplicate)

	other := s.actor("Val Kilmer")
	other.Name = "heat"
	s.ErrorIs(s.actors.Update(s.ctx, other), ErrDuplicate)

	got, err := s.actors.GetBySlug(s.ctx, "val-kilmer")
	s.Require().NoError(err)
	s.Equal("Val Kilmer", got.Name)
}

func (s *RepositorySuite) TestMovie_SlugCollision() {
	d := s.director("Michael Mann")
	s.movie("Heat", d, nil, nil)

	err := s.movies.Create(s.ctx, &models.Movie{
		Title:       "Heat!",
		Synopsis:    "x",
		ReleaseDate: time.Date(1995, 12, 15, 0, 0, 0, 0, time.UTC),
		Country:     models.CountryUnitedStates,
		DirectorID:  d.ID,
	})
	s.ErrorIs(err, ErrDuplicate)

	other := s.movie("Collateral", d, nil, nil)
	other.Title = "Heat?"
	s.ErrorIs(s.movies.Update(s.ctx, other), ErrDuplicate)

	got, err := s.movies.GetBySlug(s.ctx, "collateral")
	s.Require().NoError(err)
	s.Equal("Collateral", got.Title)
	heat, err := s.movies.GetBySlug(s.ctx, "heat")
	s.Require().NoError(err)
	s.Equal("Heat", heat.Title)
}

func (s *RepositorySuite) TestDirector_DeleteProtected() {
	d := s.director("Ridley Scott")
	m := s.movie("Alien", d, nil, nil)

	s.ErrorIs(s.directors.Delete(s.ctx, d.ID), ErrProtected)

	s.Require().NoError(s.movies.Delete(s.ctx, m.ID))
	s.Require().NoError(s.directors.Delete(s.ctx, d.ID))
	s.ErrorIs(s.directors.Delete(s.ctx, d.ID), ErrNotFound)
}

func (s *RepositorySuite) TestMovie_CreateAndGetBySlug() {
	d := s.director("Michael Mann")
	pacino := s.actor("Al Pacino")
	deniro := s.actor("Robert De Niro")
	crime := s.genre("Crime")
	drama := s.genre("Drama")

	m := s.movie("Heat", d, []models.Genre{*drama, *crime}, []models.Actor{*pacino, *deniro})
	s.Equal("heat", m.Slug)

	got, err := s.movies.GetBySlug(s.ctx, "heat")
	s.Require().NoError(err)
	s.Require().NotNil(got.Director)
	s.Equal("Michael Mann", got.Director.Name)
	s.Require().Len(got.Genres, 2)
	s.Equal("Crime", got.Genres[0].Name)
	s.Require().Len(got.Actors, 2)
	s.Equal("Al Pacino", got.Actors[0].Name)
	s.Equal(models.CountryUnitedStates, got.Country)
}

func (s *RepositorySuite) TestMovie_InvalidCountry() {
	d := s.director("Nobody")
	err := s.movies.Create(s.ctx, &models.Movie{
		Title:       "Nowhere",
		Synopsis:    "x",
		ReleaseDate: time.Now(),
		Country:     "FR",
		DirectorID:  d.ID,
	})
	s.ErrorIs(err, models.ErrInvalidCountry)
}

func (s *RepositorySuite) TestMovie_UpdateReplacesLinks() {
	d := s.director("Denis Villeneuve")
	scifi := s.genre("Sci-Fi")
	drama := s.genre("Drama")
	m := s.movie("Arrival", d, []models.Genre{*scifi}, nil)

	m.Title = "Arrival (2016)"
	m.Genres = []models.Genre{*drama}
	s.Require().NoError(s.movies.Update(s.ctx, m))

	got, err := s.movies.GetBySlug(s.ctx, "arrival-2016")
	s.Require().NoError(err)
	s.Require().Len(got.Genres, 1)
	s.Equal("Drama", got.Genres[0].Name)

	used, err := s.genres.ListUsed(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(used, 1)
	s.Equal("Drama", used[0].Name)
}

func (s *RepositorySuite) TestMovie_ListingsOrderedByTitle() {
	d := s.director("Hayao Miyazaki")
	other := s.director("Isao Takahata")
	anim := s.genre("Animation")
	voice := s.actor("Rumi Hiiragi")

	s.movie("Spirited Away", d, []models.Genre{*anim}, []models.Actor{*voice})
	s.movie("My Neighbor Totoro", d, []models.Genre{*anim}, nil)
	s.movie("Grave of the Fireflies", other, []models.Genre{*anim}, nil)

	byGenre, err := s.movies.ListByGenre(s.ctx, anim.ID)
	s.Require().NoError(err)
	s.Require().Len(byGenre, 3)
	s.Equal("Grave of the Fireflies", byGenre[0].Title)
	s.Equal("Spirited Away", byGenre[2].Title)

	byDirector, err := s.movies.ListByDirector(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Require().Len(byDirector, 2)
	s.Equal("My Neighbor Totoro", byDirector[0].Title)

	byActor, err := s.movies.ListByActor(s.ctx, voice.ID)
	s.Require().NoError(err)
	s.Require().Len(byActor, 1)
	s.Equal("Spirited Away", byActor[0].Title)
}

func (s *RepositorySuite) TestGenres_ListUsedOnlyAndDistinct() {
	d := s.director("Someone Else")
	horror := s.genre("Horror")
	comedy := s.genre("Comedy")
	s.genre("Western")

	s.movie("Movie 1", d, []models.Genre{*horror, *comedy}, nil)
	s.movie("Movie 2", d, []models.Genre{*horror}, nil)

	used, err := s.genres.ListUsed(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(used, 2)
	s.Equal("Comedy", used[0].Name)
	s.Equal("Horror", used[1].Name)

	all, err := s.genres.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *RepositorySuite) TestGenres_FindOrCreateBySlug() {
	a := s.genre("Sci-Fi")
	b := s.genre("sci fi")
	s.Equal(a.ID, b.ID)
	s.Equal("sci-fi", b.Slug)
}

func (s *RepositorySuite) TestActor_DeleteRemovesCastEntries() {
	d := s.director("Director X")
	a := s.actor("Actor Y")
	s.movie("Film Z", d, nil, []models.Actor{*a})

	s.Require().NoError(s.actors.Delete(s.ctx, a.ID))

	got, err := s.movies.GetBySlug(s.ctx, "film-z")
	s.Require().NoError(err)
	s.Empty(got.Actors)
}

func (s *RepositorySuite) TestActor_GetByNames() {
	s.actor("Uma Thurman")
	s.actor("John Travolta")

	list, err := s.actors.GetByNames(s.ctx, []string{"John Travolta", "Uma Thurman"})
	s.Require().NoError(err)
	s.Len(list, 2)

	_, err = s.actors.GetByNames(s.ctx, []string{"Uma Thurman", "Nobody"})
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositorySuite) TestUser_Lookups() {
	u := s.user("moviefan")
	s.NotEmpty(u.ID)

	byEmail, err := s.users.FindByEmail(s.ctx, "moviefan@example.com")
	s.Require().NoError(err)
	s.Equal(u.ID, byEmail.ID)

	_, err = s.users.FindByUsername(s.ctx, "missing")
	s.ErrorIs(err, ErrNotFound)

	byName, err := s.users.FindByUsername(s.ctx, "MovieFan")
	s.Require().NoError(err)
	s.Equal(u.ID, byName.ID)

	err = s.users.Create(s.ctx, &models.User{Username: "moviefan", Email: "other@example.com", Password: "x"})
	s.ErrorIs(err, ErrDuplicate)

	now := time.Now().UTC().Truncate(time.Second)
	s.Require().NoError(s.users.UpdateLastLogin(s.ctx, u.ID, now))
	got, err := s.users.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.LastLogin)
	s.True(now.Equal(got.LastLogin.UTC()))
}

func (s *RepositorySuite) TestRating_UpsertAndAverage() {
	d := s.director("Rated Director")
	m := s.movie("Rated Movie", d, nil, nil)
	alice := s.user("alice1")
	bob := s.user("bobbob")

	s.Require().NoError(s.ratings.Upsert(s.ctx, &models.Rating{UserID: alice.ID, MovieID: m.ID, Value: 4}))
	s.Require().NoError(s.ratings.Upsert(s.ctx, &models.Rating{UserID: bob.ID, MovieID: m.ID, Value: 8}))
	s.Require().NoError(s.ratings.Upsert(s.ctx, &models.Rating{UserID: alice.ID, MovieID: m.ID, Value: 10}))

	count, err := s.ratings.CountRatings(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), count)

	avg, err := s.ratings.CalculateAverageRating(s.ctx, m.ID)
	s.Require().NoError(err)
	s.InDelta(9.0, avg, 0.001)

	mine, err := s.ratings.GetByUserAndMovie(s.ctx, alice.ID, m.ID)
	s.Require().NoError(err)
	s.Equal(10, mine.Value)

	_, err = s.ratings.GetByUserAndMovie(s.ctx, "nobody", m.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositorySuite) TestReview_ListNewestFirst() {
	d := s.director("Reviewed Director")
	m := s.movie("Reviewed Movie", d, nil, nil)
	u := s.user("critic")

	first := &models.Review{UserID: u.ID, MovieID: m.ID, Body: "first"}
	s.Require().NoError(s.reviews.Create(s.ctx, first))
	second := &models.Review{UserID: u.ID, MovieID: m.ID, Body: "second"}
	s.Require().NoError(s.reviews.Create(s.ctx, second))

	list, err := s.reviews.ListByMovie(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("second", list[0].Body)
	s.Equal("critic", list[0].User.Username)

	err = s.reviews.Create(s.ctx, &models.Review{UserID: u.ID, MovieID: m.ID + 100, Body: "orphan"})
	s.ErrorIs(err, ErrProtected)
}

func (s *RepositorySuite) TestMovie_DeleteCascadesRatingsAndReviews() {
	d := s.director("Cascade Director")
	m := s.movie("Cascade Movie", d, []models.Genre{*s.genre("Noir")}, nil)
	u := s.user("cascader")
	s.Require().NoError(s.ratings.Upsert(s.ctx, &models.Rating{UserID: u.ID, MovieID: m.ID, Value: 5}))
	s.Require().NoError(s.reviews.Create(s.ctx, &models.Review{UserID: u.ID, MovieID: m.ID, Body: "ok"}))

	s.Require().NoError(s.movies.Delete(s.ctx, m.ID))

	count, err := s.ratings.CountRatings(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Zero(count)
	used, err := s.genres.ListUsed(s.ctx)
	s.Require().NoError(err)
	s.Empty(used)
	s.ErrorIs(s.movies.Delete(s.ctx, m.ID), ErrNotFound)
}
