// Package router assembles the gin engine serving the MovieHub pages.
package router

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"moviehub/internal/logging"
	"moviehub/internal/media"
	"moviehub/internal/metrics"
	"moviehub/internal/microservices/http-api/handler"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/service"
	"moviehub/internal/microservices/http-api/templates"
	"moviehub/internal/session"
)

type Options struct {
	Services *service.Services
	Sessions *session.Manager
	Media    *media.Storage
	// LoginLimiter throttles POST /login/ when set.
	LoginLimiter *middleware.RateLimiter
	// TrustedProxies may set the client IP through X-Forwarded-For. With
	// none, ClientIP is the connection's remote address.
	TrustedProxies []string
	EnableMetrics  bool
}

// New builds the engine with every page route registered.
func New(opts Options) (*gin.Engine, error) {
	tmpl, err := templates.Parse(template.FuncMap{
		"media": opts.Media.URL,
	})
	if err != nil {
		return nil, err
	}

	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.Use(logging.GinMiddleware())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.Ctx(c.Request.Context()).Error().Interface("panic", recovered).Msg("recovered from panic")
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"request_id": logging.RequestIDFromContext(c.Request.Context()),
		})
	}))
	if opts.EnableMetrics {
		r.Use(metrics.GinMiddleware())
		r.GET("/metrics", metrics.Handler())
	}

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "it's happening"})
	})
	if prefix := mediaPrefix(opts.Media.BaseURL); prefix != "" {
		r.Static(prefix, opts.Media.Root)
	}

	svc := opts.Services
	pages := handler.NewPages(opts.Sessions)

	site := r.Group("/", opts.Sessions.Middleware(), middleware.LoadUser(svc.Auth, opts.Sessions))
	handler.NewGenreHandler(svc.Genres, svc.Movies, pages).RegisterRoutes(site)
	handler.NewMovieHandler(svc.Movies, pages).RegisterRoutes(site)
	handler.NewPersonHandler(svc.Directors, svc.Actors, pages).RegisterRoutes(site)
	handler.NewAuthHandler(svc.Auth, svc.Genres, opts.Sessions, opts.LoginLimiter, pages).RegisterRoutes(site)

	members := site.Group("", middleware.RequireLogin())
	handler.NewRatingHandler(svc.Ratings, pages).RegisterRoutes(members)
	handler.NewReviewHandler(svc.Reviews, pages).RegisterRoutes(members)

	r.NoRoute(opts.Sessions.Middleware(), middleware.LoadUser(svc.Auth, opts.Sessions), func(c *gin.Context) {
		pages.Render(c, http.StatusNotFound, "movies/not_found.html", gin.H{"title": "Not found"})
	})
	return r, nil
}

// mediaPrefix returns the route uploaded files are served under, or "" when
// they live on another host.
func mediaPrefix(baseURL string) string {
	if !strings.HasPrefix(baseURL, "/") || strings.HasPrefix(baseURL, "//") {
		return ""
	}
	return strings.TrimSuffix(baseURL, "/")
}
