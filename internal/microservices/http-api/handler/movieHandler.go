package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/service"
)

// ratingScores are the options of the rating select.
var ratingScores = func() []int {
	s := make([]int, 0, models.MaxRating-models.MinRating+1)
	for v := models.MinRating; v <= models.MaxRating; v++ {
		s = append(s, v)
	}
	return s
}()

type MovieHandler struct {
	movies service.MovieService
	pages  *Pages
}

func NewMovieHandler(movies service.MovieService, pages *Pages) *MovieHandler {
	return &MovieHandler{movies: movies, pages: pages}
}

func (h *MovieHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/movies/:slug/", h.Detail)
}

// Detail handles GET /movies/:slug/
func (h *MovieHandler) Detail(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var viewerID string
	if u := middleware.CurrentUser(c); u != nil {
		viewerID = u.ID
	}

	detail, err := h.movies.GetDetail(ctx, c.Param("slug"), viewerID)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			h.pages.NotFound(c)
			return
		}
		h.pages.ServerError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, "movies/detail.html", gin.H{
		"title":  detail.Movie.Title,
		"detail": detail,
		"scores": ratingScores,
	})
}

func movieURL(slug string) string {
	return "/movies/" + slug + "/"
}
