package storage

import (
	"context"
	"path"
	"sync"
)

// MemoryStorage - ephemeral in-process Store, selected when no durable
// backend is configured. Update holds the write lock across the whole
// read-modify-write, which gives the same per-document atomicity the redis
// backend gets from WATCH.
type MemoryStorage struct {
	mu   sync.RWMutex
	docs map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		docs: make(map[string]string),
	}
}

func (that *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	value, ok := that.docs[key]
	if !ok {
		return "", ErrKeyNotFound
	}

	return value, nil
}

func (that *MemoryStorage) Set(_ context.Context, key, value string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.docs[key] = value

	return nil
}

func (that *MemoryStorage) Delete(_ context.Context, key string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.docs, key)

	return nil
}

func (that *MemoryStorage) Keys(_ context.Context, pattern string) ([]string, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	var keys []string
	for key := range that.docs {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}

	return keys, nil
}

func (that *MemoryStorage) Update(_ context.Context, key string, fn func(current string) (string, error)) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	current, ok := that.docs[key]
	if !ok {
		return ErrKeyNotFound
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	that.docs[key] = next

	return nil
}

func (that *MemoryStorage) Close() error {
	return nil
}
