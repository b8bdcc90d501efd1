package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"moviehub/database"
	"moviehub/internal/logging"
	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/microservices/http-api/router"
	"moviehub/internal/microservices/http-api/service"
	"moviehub/internal/session"
)

const testSecret = "test-session-secret-of-at-least-32-chars"

// site is a full engine over in-memory SQLite plus a browser-like cookie jar.
type site struct {
	t        *testing.T
	db       *gorm.DB
	svc      *service.Services
	engine   *gin.Engine
	store    *session.MemoryStore
	mediaDir string
	cookies  map[string]*http.Cookie
}

func newSite(t *testing.T, limiter *middleware.RateLimiter) *site {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logging.Init(logging.Config{Level: "error", Format: "json", Output: io.Discard})

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.New().String())
	db, err := database.Open(database.DriverSQLite, dsn, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	mediaDir := t.TempDir()
	storage := media.NewStorage(mediaDir, "/media/")
	store := session.NewMemoryStore()
	svc := service.NewServices(db, storage)

	engine, err := router.New(router.Options{
		Services:     svc,
		Sessions:     session.NewManager(store, testSecret, time.Hour, false),
		Media:        storage,
		LoginLimiter: limiter,
	})
	require.NoError(t, err)

	return &site{
		t:        t,
		db:       db,
		svc:      svc,
		engine:   engine,
		store:    store,
		mediaDir: mediaDir,
		cookies:  make(map[string]*http.Cookie),
	}
}

func (s *site) do(req *http.Request) *httptest.ResponseRecorder {
	s.t.Helper()
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	req.RemoteAddr = "192.0.2.10:40000"

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(s.cookies, c.Name)
			continue
		}
		s.cookies[c.Name] = c
	}
	return w
}

func (s *site) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *site) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

// postMultipart sends fields plus one file under fileField when data is non-nil.
func (s *site) postMultipart(path string, fields map[string]string, fileField, filename string, data []byte) *httptest.ResponseRecorder {
	s.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(s.t, mw.WriteField(k, v))
	}
	if data != nil {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(s.t, err)
		_, err = fw.Write(data)
		require.NoError(s.t, err)
	}
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req)
}

func (s *site) doc(w *httptest.ResponseRecorder) *goquery.Document {
	s.t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(s.t, err)
	return doc
}

// messages returns the flash messages shown on doc.
func messages(doc *goquery.Document) []string {
	var out []string
	doc.Find("ul.messages li").Each(func(_ int, sel *goquery.Selection) {
		out = append(out, strings.TrimSpace(sel.Text()))
	})
	return out
}

// errorList returns every form error on doc.
func errorList(doc *goquery.Document) []string {
	var out []string
	doc.Find(".errorlist li").Each(func(_ int, sel *goquery.Selection) {
		out = append(out, strings.TrimSpace(sel.Text()))
	})
	return out
}

func (s *site) register(username, email, password string) *models.User {
	s.t.Helper()
	u, err := s.svc.Auth.Register(context.Background(), service.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(s.t, err)
	return u
}

// login posts the login form and expects success.
func (s *site) login(email, password string) {
	s.t.Helper()
	w := s.post("/login/", url.Values{"username": {email}, "password": {password}})
	require.Equal(s.t, http.StatusFound, w.Code, w.Body.String())
}

// seedMovie creates a movie with its director, actors and genres.
func (s *site) seedMovie(title, director string, actors, genres []string) *models.Movie {
	s.t.Helper()
	ctx := context.Background()
	if _, err := s.svc.Directors.Create(ctx, director, nil); err != nil {
		require.ErrorIs(s.t, err, repository.ErrDuplicate)
	}
	for _, a := range actors {
		if _, err := s.svc.Actors.Create(ctx, a, nil); err != nil {
			require.ErrorIs(s.t, err, repository.ErrDuplicate)
		}
	}
	m, err := s.svc.Movies.Create(ctx, service.MovieInput{
		Title:        title,
		Synopsis:     "Synopsis of " + title,
		ReleaseDate:  time.Date(1995, time.December, 15, 0, 0, 0, 0, time.UTC),
		Country:      models.CountryUnitedStates,
		DirectorName: director,
		ActorNames:   actors,
		Genres:       genres,
	})
	require.NoError(s.t, err)
	return m
}

func pngImage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}
