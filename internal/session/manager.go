package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"moviehub/internal/logging"
)

const (
	CookieName = "moviehub_session"
	contextKey = "session"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrNoSession    = errors.New("no session in context")
)

// Manager ties a Store to the session cookie. The cookie holds an HS256 JWT
// whose jti is the session ID, so a tampered or foreign cookie never reaches
// the store.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewManager(store Store, secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}
}

func (m *Manager) sign(id string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// parse validates the cookie value and returns the session ID it carries.
func (m *Manager) parse(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}

func (m *Manager) newSession() *Session {
	return &Session{ID: uuid.New().String()}
}

// load resolves the request's session from its cookie, starting a fresh one
// when the cookie is missing, invalid or expired.
func (m *Manager) load(c *gin.Context) *Session {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return m.newSession()
	}
	id, err := m.parse(raw)
	if err != nil {
		logging.Ctx(c.Request.Context()).Debug().Err(err).Msg("discarding session cookie")
		return m.newSession()
	}
	s, err := m.store.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.Ctx(c.Request.Context()).Error().Err(err).Msg("session store lookup failed")
		}
		return m.newSession()
	}
	return s
}

// Middleware loads the session into the gin context. The session is saved
// explicitly by handlers that change it.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKey, m.load(c))
		c.Next()
	}
}

// Current returns the session loaded by Middleware.
func Current(c *gin.Context) (*Session, error) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, ErrNoSession
	}
	s, ok := v.(*Session)
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

// Save persists s and (re)issues the cookie.
func (m *Manager) Save(c *gin.Context, s *Session) error {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return err
	}
	token, err := m.sign(s.ID)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
	c.Set(contextKey, s)
	return nil
}

// Login binds userID to the session under a new ID and saves it. Pending
// flashes are carried over.
func (m *Manager) Login(c *gin.Context, s *Session, userID string) error {
	if err := m.store.Delete(c.Request.Context(), s.ID); err != nil {
		logging.Ctx(c.Request.Context()).Warn().Err(err).Msg("could not delete pre-login session")
	}
	s.ID = uuid.New().String()
	s.UserID = userID
	return m.Save(c, s)
}

// Logout destroys s and returns a fresh anonymous session, already placed in
// the gin context but not yet saved. A store failure is logged and the
// cookie is cleared, so the browser drops the old token either way.
func (m *Manager) Logout(c *gin.Context, s *Session) *Session {
	if err := m.store.Delete(c.Request.Context(), s.ID); err != nil {
		logging.Ctx(c.Request.Context()).Warn().Err(err).Str("session_id", s.ID).Msg("could not delete session on logout")
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
	}
	fresh := m.newSession()
	c.Set(contextKey, fresh)
	return fresh
}
