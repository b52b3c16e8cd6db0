// Package storage keeps uploaded document files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"talentflow/internal/config"
	"talentflow/internal/logging"
)

// ErrNotFound is returned when no object exists under a key.
var ErrNotFound = errors.New("object not found")

// Backend stores opaque blobs by key.
type Backend interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// Health reports whether the backend is reachable.
	Health(ctx context.Context) error
	Name() string
}

// New builds the backend selected by cfg.Storage.Backend.
func New(cfg *config.Config, logger logging.Logger) (Backend, error) {
	switch cfg.Storage.Backend {
	case "", "local":
		return NewLocal(cfg.Storage.LocalDir)
	case "spaces":
		return NewSpaces(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
