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

const MsgReviewPublished = "Your review has been published."

type ReviewHandler struct {
	reviewService service.ReviewService
	pages         *Pages
}

func NewReviewHandler(reviewService service.ReviewService, pages *Pages) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, pages: pages}
}

// RegisterRoutes registers review routes; the group must carry RequireLogin.
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/movies/:slug/reviews/", h.Create)
}

// Create publishes a review by the current user.
// POST /movies/:slug/reviews/
func (h *ReviewHandler) Create(c *gin.Context) {
	slug := c.Param("slug")
	user := middleware.CurrentUser(c)

	var form dto.ReviewForm
	if err := bindForm(c, &form); err != nil {
		fe := dto.FromBinding(err)
		msg := dto.MsgInvalidSubmission
		if msgs := fe.Get("body"); len(msgs) > 0 {
			msg = msgs[0]
		}
		h.pages.Redirect(c, movieURL(slug), session.LevelError, msg)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	_, _, err := h.reviewService.Publish(ctx, user.ID, slug, form.Body)
	switch {
	case err == nil:
		h.pages.Redirect(c, movieURL(slug), session.LevelSuccess, MsgReviewPublished)
	case errors.Is(err, service.ErrMovieNotFound):
		h.pages.NotFound(c)
	case errors.Is(err, service.ErrEmptyReview):
		h.pages.Redirect(c, movieURL(slug), session.LevelError, dto.MsgReviewEmpty)
	case errors.Is(err, service.ErrReviewTooLong):
		h.pages.Redirect(c, movieURL(slug), session.LevelError, dto.MsgReviewTooLong)
	default:
		h.pages.ServerError(c, err)
	}
}
