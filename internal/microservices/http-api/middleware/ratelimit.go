package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"moviehub/internal/logging"
	"moviehub/internal/metrics"
)

// RateLimiter throttles requests per client IP.
type RateLimiter struct {
	limiters  map[string]*rateLimiterEntry
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	stopClean chan struct{}
	stopOnce  sync.Once
}

type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter allows perSecond sustained requests per IP with the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*rateLimiterEntry),
		rate:      rate.Limit(perSecond),
		burst:     burst,
		stopClean: make(chan struct{}),
	}
}

// Allow reports whether a request from ip may proceed and consumes a token if so.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	entry, exists := rl.limiters[ip]
	if !exists {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastAccess = time.Now()
	limiter := entry.limiter
	rl.mu.Unlock()

	return limiter.Allow()
}

// StartCleanup drops limiters idle for an hour, every interval, until Stop.
func (rl *RateLimiter) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup(time.Now().Add(-time.Hour))
			case <-rl.stopClean:
				return
			}
		}
	}()
}

func (rl *RateLimiter) cleanup(threshold time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, entry := range rl.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(rl.limiters, ip)
		}
	}
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopClean) })
}

// Middleware runs onLimit instead of the route handler once the client IP
// is over its budget.
func (rl *RateLimiter) Middleware(onLimit gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			metrics.RecordAuthEvent("login_throttled")
			logging.Ctx(c.Request.Context()).Warn().Str("client_ip", c.ClientIP()).Msg("login rate limit exceeded")
			onLimit(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
