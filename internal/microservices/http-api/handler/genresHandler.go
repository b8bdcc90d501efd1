package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/internal/microservices/http-api/service"
)

type GenreHandler struct {
	genres service.GenreService
	movies service.MovieService
	pages  *Pages
}

func NewGenreHandler(genres service.GenreService, movies service.MovieService, pages *Pages) *GenreHandler {
	return &GenreHandler{genres: genres, movies: movies, pages: pages}
}

func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.GET("/genres/:slug/", h.Movies)
}

// List handles GET /: the genres at least one movie is tagged with.
func (h *GenreHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	genres, err := h.genres.ListUsed(ctx)
	if err != nil {
		h.pages.ServerError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, "movies/index.html", gin.H{
		"title":  "Genres",
		"genres": genres,
	})
}

// Movies handles GET /genres/:slug/
func (h *GenreHandler) Movies(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	genre, movies, err := h.movies.ListByGenre(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrGenreNotFound) {
			h.pages.NotFound(c)
			return
		}
		h.pages.ServerError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, "movies/genre.html", gin.H{
		"title":  genre.Name,
		"genre":  genre,
		"movies": movies,
	})
}
