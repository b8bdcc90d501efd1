package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/internal/microservices/http-api/service"
)

// PersonHandler serves the director and actor pages.
type PersonHandler struct {
	directors service.DirectorService
	actors    service.ActorService
	pages     *Pages
}

func NewPersonHandler(directors service.DirectorService, actors service.ActorService, pages *Pages) *PersonHandler {
	return &PersonHandler{directors: directors, actors: actors, pages: pages}
}

func (h *PersonHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/directors/:slug/", h.Director)
	rg.GET("/actors/:slug/", h.Actor)
}

// Director handles GET /directors/:slug/
func (h *PersonHandler) Director(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	director, movies, err := h.directors.GetPage(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrDirectorNotFound) {
			h.pages.NotFound(c)
			return
		}
		h.pages.ServerError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, "movies/director.html", gin.H{
		"title":    director.Name,
		"director": director,
		"movies":   movies,
	})
}

// Actor handles GET /actors/:slug/
func (h *PersonHandler) Actor(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	actor, movies, err := h.actors.GetPage(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrActorNotFound) {
			h.pages.NotFound(c)
			return
		}
		h.pages.ServerError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, "movies/actor.html", gin.H{
		"title":  actor.Name,
		"actor":  actor,
		"movies": movies,
	})
}
