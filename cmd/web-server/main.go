package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/database"
	"moviehub/internal/config"
	"moviehub/internal/logging"
	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/router"
	"moviehub/internal/microservices/http-api/service"
	"moviehub/internal/session"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("could not load config")
	}
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("invalid config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("could not connect to database")
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("could not migrate database")
	}

	store, closeStore, err := newSessionStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("store", cfg.SessionStore).Msg("could not open session store")
	}
	defer closeStore()

	limiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst)
	limiter.StartCleanup(10 * time.Minute)
	defer limiter.Stop()

	storage := media.NewStorage(cfg.MediaRoot, cfg.MediaURL)
	engine, err := router.New(router.Options{
		Services:       service.NewServices(db, storage),
		Sessions:       session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure),
		Media:          storage,
		LoginLimiter:   limiter,
		TrustedProxies: cfg.TrustedProxies,
		EnableMetrics:  cfg.PrometheusEnabled,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("could not build router")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Str("env", cfg.GoEnv).Msg("web server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		logging.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("forced shutdown")
		}
		logging.Info().Msg("server stopped gracefully")
	case err := <-errChan:
		logging.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}

// newSessionStore opens the configured session backend.
func newSessionStore(cfg *config.Config) (session.Store, func(), error) {
	if cfg.SessionStore == "memory" {
		return session.NewMemoryStore(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rs, err := session.NewRedisStore(ctx, cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		return nil, nil, err
	}
	return rs, func() {
		if err := rs.Close(); err != nil {
			logging.Warn().Err(err).Msg("could not close redis")
		}
	}, nil
}
