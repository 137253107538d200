package badger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/poiesic/aegis/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return backend
}

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "db")
	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := OpenBackend(path, false)
	assert.Error(t, err)
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())

	_, err = backend.Get(context.Background(), "k")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestBackend_GetSetDelete(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	_, err := backend.Get(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, backend.Set(ctx, "k", []byte("v1")))
	value, err := backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), value)

	require.NoError(t, backend.Delete(ctx, "k"))
	_, err = backend.Get(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting a missing key is fine.
	assert.NoError(t, backend.Delete(ctx, "k"))
}

func TestBackend_Update(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	t.Run("creates missing key", func(t *testing.T) {
		err := backend.Update(ctx, "u", func(current []byte) ([]byte, error) {
			assert.Nil(t, current)
			return []byte("one"), nil
		})
		require.NoError(t, err)

		value, err := backend.Get(ctx, "u")
		require.NoError(t, err)
		assert.Equal(t, []byte("one"), value)
	})

	t.Run("error leaves value untouched", func(t *testing.T) {
		err := backend.Update(ctx, "u", func(current []byte) ([]byte, error) {
			return []byte("two"), assert.AnError
		})
		assert.Equal(t, assert.AnError, err)

		value, err := backend.Get(ctx, "u")
		require.NoError(t, err)
		assert.Equal(t, []byte("one"), value)
	})

	t.Run("nil deletes", func(t *testing.T) {
		require.NoError(t, backend.Update(ctx, "u", func([]byte) ([]byte, error) { return nil, nil }))
		_, err := backend.Get(ctx, "u")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := backend.Update(cancelled, "u", func([]byte) ([]byte, error) { return []byte("x"), nil })
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestBackend_UpdateConcurrent(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()
	repo := NewBookmarkRepository(backend)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := repo.Add(ctx, id)
			assert.NoError(t, err)
		}(string(rune('a' + i)))
	}
	wg.Wait()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestBackend_UnreadableValueReadsEmpty(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, bookmarksKey, []byte{0xff, 0xff, 0xff}))

	repo := NewBookmarkRepository(backend)
	bookmarks, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)

	added, err := repo.Add(ctx, "whitepages")
	require.NoError(t, err)
	assert.True(t, added)

	ids, err := repo.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"whitepages"}, ids)
}
