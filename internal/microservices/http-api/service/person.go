package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"moviehub/internal/slug"
)

var (
	ErrDirectorNotFound = errors.New("director not found")
	ErrActorNotFound    = errors.New("actor not found")
	ErrHasMovies        = errors.New("director still has movies")
)

const maxNameLength = 200

// validateName checks a director or actor name before it is saved.
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", errors.New("name is required")
	case utf8.RuneCountInString(name) > maxNameLength:
		return "", fmt.Errorf("name cannot be longer than %d characters", maxNameLength)
	case slug.Make(name) == "":
		return "", fmt.Errorf("name %q has no URL-safe characters", name)
	}
	return name, nil
}
