package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var (
	ErrNotFound       = errors.New("storage: not found")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// KeyValueStore is the persistent store every record family is written to.
// Get returns ErrNotFound for absent keys. Remove of an absent key succeeds.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Backend is a KeyValueStore that owns an open database handle.
type Backend interface {
	KeyValueStore
	io.Closer
	Path() string
}

type Options struct {
	Backend    string
	Path       string
	SyncWrites bool
	// Logger receives Badger's internal logging. SQLite ignores it.
	Logger *slog.Logger
}

func Open(opts Options) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendSQLite:
		return OpenSQLite(opts.Path)
	case BackendBadger:
		return OpenBadger(BadgerConfig{
			Path:       opts.Path,
			SyncWrites: opts.SyncWrites,
			Logger:     opts.Logger,
		})
	default:
		return nil, fmt.Errorf("open storage: %w: %q", ErrUnknownBackend, opts.Backend)
	}
}
