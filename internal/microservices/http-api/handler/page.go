package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"moviehub/internal/logging"
	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/session"
)

// Pages renders templates with the data every page shares: the logged-in
// user and the session's pending messages.
type Pages struct {
	sessions *session.Manager
}

func NewPages(sessions *session.Manager) *Pages {
	return &Pages{sessions: sessions}
}

// Render adds "user" and "messages" to data and writes the template.
func (p *Pages) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["user"] = middleware.CurrentUser(c)

	if sess, err := session.Current(c); err == nil {
		if flashes := sess.PopFlashes(); len(flashes) > 0 {
			if err := p.sessions.Save(c, sess); err != nil {
				logging.Ctx(c.Request.Context()).Error().Err(err).Msg("could not save session")
			}
			data["messages"] = flashes
		}
	}
	c.HTML(status, name, data)
}

// Redirect queues message for the next page and sends a 302 to location.
func (p *Pages) Redirect(c *gin.Context, location, level, message string) {
	if sess, err := session.Current(c); err == nil {
		sess.AddFlash(level, message)
		if err := p.sessions.Save(c, sess); err != nil {
			logging.Ctx(c.Request.Context()).Error().Err(err).Msg("could not save session")
		}
	}
	c.Redirect(http.StatusFound, location)
}

// NotFound renders the not-found page. Unknown slugs are answered with 200.
func (p *Pages) NotFound(c *gin.Context) {
	p.Render(c, http.StatusOK, "movies/not_found.html", gin.H{"title": "Not found"})
}

func (p *Pages) ServerError(c *gin.Context, err error) {
	logging.Ctx(c.Request.Context()).Error().Err(err).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"request_id": logging.RequestIDFromContext(c.Request.Context()),
	})
}

// maxFormBytes bounds a posted body: one image at the upload limit with room
// for the multipart framing and the text fields.
const maxFormBytes = 2*media.MaxUploadSize + 64<<10

// bodyTooLargeKey marks requests whose body went over maxFormBytes.
const bodyTooLargeKey = "body_too_large"

// bindForm binds the posted form into obj. Values are trimmed first, except
// for the fields named in raw.
func bindForm(c *gin.Context, obj any, raw ...string) error {
	req := c.Request
	if req.ContentLength > maxFormBytes {
		c.Set(bodyTooLargeKey, true)
		return &http.MaxBytesError{Limit: maxFormBytes}
	}
	req.Body = http.MaxBytesReader(c.Writer, req.Body, maxFormBytes)
	if err := req.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Set(bodyTooLargeKey, true)
		}
		return err
	}

	keep := make(map[string]bool, len(raw))
	for _, k := range raw {
		keep[k] = true
	}
	for _, values := range []map[string][]string{req.Form, req.PostForm} {
		for k, vs := range values {
			if keep[k] {
				continue
			}
			for i := range vs {
				vs[i] = strings.TrimSpace(vs[i])
			}
		}
	}
	return c.ShouldBindWith(obj, binding.Form)
}

// formUpload returns the file posted as field, or nil when none was sent.
// Size and image checks run here so their errors show up next to the other
// field errors. The caller closes the returned file.
func formUpload(c *gin.Context, field string) (*media.Upload, multipart.File, error) {
	if c.GetBool(bodyTooLargeKey) {
		return nil, nil, media.ErrFileTooLarge
	}
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	if fh.Size == 0 && fh.Filename == "" {
		return nil, nil, nil
	}
	if err := media.ValidateFileSize(fh.Size); err != nil {
		return nil, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	if err := media.ValidateImage(f); err != nil {
		f.Close()
		return nil, nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, nil, err
	}
	return &media.Upload{Filename: fh.Filename, Size: fh.Size, Content: f}, f, nil
}
