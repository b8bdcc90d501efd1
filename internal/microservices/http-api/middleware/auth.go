package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/internal/logging"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/service"
	"moviehub/internal/session"
)

// LoginURL is where anonymous visitors of protected pages are sent.
const LoginURL = "/become_user/"

const userKey = "user"

// LoadUser resolves the session's user and stores it on the gin context.
// Sessions pointing at a deleted account are downgraded to anonymous.
func LoadUser(authService service.AuthService, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := session.Current(c)
		if err != nil || !sess.IsAuthenticated() {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := authService.GetByID(ctx, sess.UserID)
		switch {
		case err == nil:
			c.Set(userKey, user)
			c.Set("userID", user.ID)
		case errors.Is(err, service.ErrUserNotFound):
			sess.UserID = ""
			if err := sessions.Save(c, sess); err != nil {
				logging.Ctx(c.Request.Context()).Error().Err(err).Msg("could not reset stale session")
			}
		default:
			logging.Ctx(c.Request.Context()).Error().Err(err).Msg("could not load session user")
		}
		c.Next()
	}
}

// CurrentUser returns the logged-in user, or nil for anonymous visitors.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// RequireLogin redirects anonymous visitors to LoginURL with the current
// path in ?next=.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginRedirect(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginRedirect builds the LoginURL for next, keeping slashes readable.
func LoginRedirect(next string) string {
	return LoginURL + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext returns next when it is a local absolute path, fallback otherwise.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return next
}
