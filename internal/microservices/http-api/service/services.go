package service

import (
	"gorm.io/gorm"

	"moviehub/internal/microservices/http-api/repository"
)

// Services holds every application service backed by one database.
type Services struct {
	Auth      AuthService
	Genres    GenreService
	Movies    MovieService
	Directors DirectorService
	Actors    ActorService
	Ratings   RatingService
	Reviews   ReviewService
}

func NewServices(db *gorm.DB, store MediaStore) *Services {
	userRepo := repository.NewUserRepository(db)
	directorRepo := repository.NewDirectorRepository(db)
	actorRepo := repository.NewActorRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	return &Services{
		Auth:      NewAuthService(userRepo, store),
		Genres:    NewGenreService(genreRepo),
		Movies:    NewMovieService(movieRepo, directorRepo, actorRepo, genreRepo, ratingRepo, reviewRepo, store),
		Directors: NewDirectorService(directorRepo, movieRepo, store),
		Actors:    NewActorService(actorRepo, movieRepo, store),
		Ratings:   NewRatingService(ratingRepo, movieRepo),
		Reviews:   NewReviewService(reviewRepo, movieRepo),
	}
}
