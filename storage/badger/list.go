package badger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/aegis/storage"
)

// listStore reads and rewrites one encoded list stored under a single key.
// Values that fail to decode are logged and read as an empty list.
type listStore[T any] struct {
	backend *Backend
	key     string
	marshal func([]T) []byte
	decode  func([]byte) ([]T, error)
	logger  *slog.Logger
}

func newListStore[T any](backend *Backend, key string, marshal func([]T) []byte, decode func([]byte) ([]T, error)) *listStore[T] {
	return &listStore[T]{
		backend: backend,
		key:     key,
		marshal: marshal,
		decode:  decode,
		logger:  backend.logger.With("key", key),
	}
}

// load returns the current list.
func (s *listStore[T]) load(ctx context.Context) ([]T, error) {
	data, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.unmarshal(data), nil
}

// update replaces the list with the result of fn in one transaction.
// An empty result deletes the key.
func (s *listStore[T]) update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	return s.backend.Update(ctx, s.key, func(current []byte) ([]byte, error) {
		var items []T
		if current != nil {
			items = s.unmarshal(current)
		}
		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		if len(next) == 0 {
			return nil, nil
		}
		return s.marshal(next), nil
	})
}

// clear removes the list.
func (s *listStore[T]) clear(ctx context.Context) error {
	return s.backend.Delete(ctx, s.key)
}

func (s *listStore[T]) unmarshal(data []byte) []T {
	items, err := s.decode(data)
	if err != nil {
		s.logger.Warn("discarding unreadable list", "error", err)
		return nil
	}
	return items
}
