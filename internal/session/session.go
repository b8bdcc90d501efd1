// Package session keeps per-visitor state (the logged-in user and pending
// flash messages) in a server-side Store, referenced from a signed cookie.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Flash levels, rendered as CSS classes.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type Session struct {
	ID      string  `json:"-"`
	UserID  string  `json:"user_id,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`
}

func (s *Session) IsAuthenticated() bool {
	return s.UserID != ""
}

func (s *Session) AddFlash(level, message string) {
	s.Flashes = append(s.Flashes, Flash{Level: level, Message: message})
}

// PopFlashes returns the pending messages and clears them.
func (s *Session) PopFlashes() []Flash {
	out := s.Flashes
	s.Flashes = nil
	return out
}

// Store persists sessions by ID. Get returns ErrNotFound for unknown or
// expired IDs.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
