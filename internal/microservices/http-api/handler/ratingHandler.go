package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/service"
	"moviehub/internal/session"
)

const MsgRatingSaved = "Your rating has been saved."

type RatingHandler struct {
	ratingService service.RatingService
	pages         *Pages
}

func NewRatingHandler(ratingService service.RatingService, pages *Pages) *RatingHandler {
	return &RatingHandler{ratingService: ratingService, pages: pages}
}

// RegisterRoutes registers rating routes; the group must carry RequireLogin.
func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/movies/:slug/rate/", h.Rate)
}

// Rate creates or replaces the current user's rating.
// POST /movies/:slug/rate/
func (h *RatingHandler) Rate(c *gin.Context) {
	slug := c.Param("slug")
	user := middleware.CurrentUser(c)

	var form dto.RatingForm
	// an empty value would bind as 0
	if err := bindForm(c, &form); err != nil || c.PostForm("rating") == "" {
		h.pages.Redirect(c, movieURL(slug), session.LevelError, dto.MsgInvalidRating)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	_, err := h.ratingService.Rate(ctx, user.ID, slug, *form.Rating)
	switch {
	case err == nil:
		h.pages.Redirect(c, movieURL(slug), session.LevelSuccess, MsgRatingSaved)
	case errors.Is(err, service.ErrMovieNotFound):
		h.pages.NotFound(c)
	case errors.Is(err, service.ErrInvalidRating):
		h.pages.Redirect(c, movieURL(slug), session.LevelError, dto.MsgInvalidRating)
	default:
		h.pages.ServerError(c, err)
	}
}
