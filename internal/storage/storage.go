// Package storage persists the board in a key-value store: a table in a
// SQLite file by default, or Redis.
package storage

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/config"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// KV is the key-value store the board writes through to. Set always
// overwrites the whole value.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open returns the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.Config) (KV, error) {
	switch cfg.Backend {
	case "", config.BackendSQLite:
		return OpenSQLite(cfg.DBPath, cfg.SQLiteDriver)
	case config.BackendRedis:
		return OpenRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
