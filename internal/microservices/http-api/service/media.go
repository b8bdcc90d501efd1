package service

import (
	"context"

	"moviehub/internal/logging"
	"moviehub/internal/media"
)

// MediaStore persists uploaded images. *media.Storage implements it.
type MediaStore interface {
	Save(ctx context.Context, kind media.Kind, u *media.Upload) (string, error)
	Delete(rel string) error
}

// discardMedia removes a stored file, logging instead of failing.
func discardMedia(ctx context.Context, store MediaStore, rel string) {
	if rel == "" {
		return
	}
	if err := store.Delete(rel); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("path", rel).Msg("could not remove media file")
	}
}
