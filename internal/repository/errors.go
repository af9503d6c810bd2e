// Package repository defines error types that are reused across multiple
// repositories. Handlers match on ErrNotFound with errors.Is to produce a
// 404; the entity-specific values carry a readable message.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is the root of every "no such row" error returned by this
// package.
var ErrNotFound = errors.New("not found")

var (
	ErrMovieNotFound    = fmt.Errorf("movie %w", ErrNotFound)
	ErrDirectorNotFound = fmt.Errorf("director %w", ErrNotFound)
	ErrGenreNotFound    = fmt.Errorf("genre %w", ErrNotFound)
)
