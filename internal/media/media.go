// Package media validates uploaded images and stores them on disk under a
// directory keyed by the owning entity type.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // decoders accepted for uploads
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadKB is the size ceiling shared by every image field.
const MaxUploadKB = 500

// MaxUploadSize is MaxUploadKB in bytes.
const MaxUploadSize int64 = MaxUploadKB * 1024

// Kind is the storage directory of an entity's images, relative to the media root.
type Kind string

const (
	KindDirectorPhoto Kind = "movies/images"
	KindActorPhoto    Kind = "movies/images"
	KindPoster        Kind = "movies/images"
	KindAvatar        Kind = "users/images"
)

// ValidationError is returned for uploads that must be rejected; its message is
// meant to be shown next to the form field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrFileTooLarge = &ValidationError{Message: fmt.Sprintf("Files cannot be larger than %dKB", MaxUploadKB)}
	ErrNotAnImage   = &ValidationError{Message: "Upload a valid image. The file you uploaded was either not an image or a corrupted image."}
)

// IsValidationError reports whether err carries a user-facing upload message.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateFileSize rejects files above MaxUploadSize.
func ValidateFileSize(size int64) error {
	if size > MaxUploadSize {
		return ErrFileTooLarge
	}
	return nil
}

// extensions maps the formats reported by image.DecodeConfig to the file
// extension stored files get.
var extensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
}

// DetectFormat returns the stored file extension for r's image format. The
// uploaded file name plays no part in it.
func DetectFormat(r io.Reader) (string, error) {
	_, format, err := image.DecodeConfig(r)
	if err != nil {
		return "", ErrNotAnImage
	}
	ext, ok := extensions[format]
	if !ok {
		return "", ErrNotAnImage
	}
	return ext, nil
}

// ValidateImage rejects content that none of the registered decoders accept.
func ValidateImage(r io.Reader) error {
	_, err := DetectFormat(r)
	return err
}

// Upload is an image received from a form or read from disk by the admin CLI.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// Storage writes validated uploads below Root and builds their public URLs.
type Storage struct {
	Root    string
	BaseURL string
}

func NewStorage(root, baseURL string) *Storage {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Storage{Root: root, BaseURL: baseURL}
}

// Validate runs the size guard and the image check, returning the buffered
// content so it can still be written afterwards, and the extension matching
// its decoded format.
func Validate(u *Upload) ([]byte, string, error) {
	if err := ValidateFileSize(u.Size); err != nil {
		return nil, "", err
	}
	// one extra byte detects a Size that understates the real content
	data, err := io.ReadAll(io.LimitReader(u.Content, MaxUploadSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	if err := ValidateFileSize(int64(len(data))); err != nil {
		return nil, "", err
	}
	ext, err := DetectFormat(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return data, ext, nil
}

// Save validates u and writes it as <Root>/<kind>/<uuid><ext>, where ext
// follows the decoded image format. The returned path is relative to Root and
// uses forward slashes.
func (s *Storage) Save(ctx context.Context, kind Kind, u *Upload) (string, error) {
	data, ext, err := Validate(u)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := path.Join(string(kind), uuid.New().String()+ext)
	full := filepath.Join(s.Root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return rel, nil
}

// Delete removes a previously saved file. Missing files are not an error.
func (s *Storage) Delete(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(path.Clean("/"+rel))))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}

// URL returns the public URL of a stored file, or "" when rel is empty.
func (s *Storage) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return s.BaseURL + strings.TrimPrefix(rel, "/")
}
