package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Store - a document store keyed by string IDs. Values are JSON documents.
// Update must apply fn against the freshest stored value atomically with
// respect to the key, so concurrent updates of one document cannot both
// succeed on stale reads.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	Update(ctx context.Context, key string, fn func(current string) (string, error)) error
	Close() error
}
