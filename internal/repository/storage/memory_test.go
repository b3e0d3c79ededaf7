package storage

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_GetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "game:1", `{"id":"1"}`))

	value, err := store.Get(ctx, "game:1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, value)

	require.NoError(t, store.Delete(ctx, "game:1"))

	_, err = store.Get(ctx, "game:1")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStorage_Keys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	require.NoError(t, store.Set(ctx, "game:1", "a"))
	require.NoError(t, store.Set(ctx, "game:2", "b"))
	require.NoError(t, store.Set(ctx, "user:1", "c"))

	keys, err := store.Keys(ctx, "game:*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"game:1", "game:2"}, keys)
}

func TestMemoryStorage_Update(t *testing.T) {
	t.Run("MutationErrorLeavesValue", func(t *testing.T) {
		ctx := context.Background()
		store := NewMemoryStorage()

		require.NoError(t, store.Set(ctx, "game:1", "before"))

		boom := errors.New("rejected")
		err := store.Update(ctx, "game:1", func(string) (string, error) {
			return "after", boom
		})
		require.ErrorIs(t, err, boom)

		value, err := store.Get(ctx, "game:1")
		require.NoError(t, err)
		assert.Equal(t, "before", value)
	})

	t.Run("MissingKey", func(t *testing.T) {
		ctx := context.Background()
		store := NewMemoryStorage()

		err := store.Update(ctx, "missing", func(current string) (string, error) {
			return current, nil
		})
		require.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("ConcurrentIncrementsAllLand", func(t *testing.T) {
		// Given: a numeric document and many racing read-modify-writes
		ctx := context.Background()
		store := NewMemoryStorage()
		require.NoError(t, store.Set(ctx, "counter", "0"))

		const workers = 50

		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = store.Update(ctx, "counter", func(current string) (string, error) {
					n, err := strconv.Atoi(current)
					if err != nil {
						return "", err
					}
					return strconv.Itoa(n + 1), nil
				})
			}()
		}
		wg.Wait()

		// Then: no increment was lost
		value, err := store.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(workers), value)
	})
}
