package badger

import (
	"context"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/poiesic/aegis/core"
	"github.com/poiesic/aegis/storage"
)

// SearchHistoryRepository implements storage.SearchHistoryRepository for BadgerDB.
type SearchHistoryRepository struct {
	list *listStore[core.HistoryEntry]
	now  func() time.Time
}

var _ storage.SearchHistoryRepository = (*SearchHistoryRepository)(nil)

// NewSearchHistoryRepository creates a new SearchHistoryRepository.
func NewSearchHistoryRepository(backend *Backend) *SearchHistoryRepository {
	return &SearchHistoryRepository{
		list: newListStore(backend, searchHistoryKey, storage.MarshalHistory, storage.UnmarshalHistory),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// List returns the history, newest first.
func (r *SearchHistoryRepository) List(ctx context.Context) ([]core.HistoryEntry, error) {
	entries, err := r.list.load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(entries, func(e core.HistoryEntry) bool {
		return !validHistoryQuery(e.Query)
	}), nil
}

// Add records query as the most recent search.
func (r *SearchHistoryRepository) Add(ctx context.Context, query string) (bool, error) {
	query = strings.TrimSpace(query)
	if !validHistoryQuery(query) {
		return false, nil
	}

	err := r.list.update(ctx, func(entries []core.HistoryEntry) ([]core.HistoryEntry, error) {
		entries = slices.DeleteFunc(entries, func(e core.HistoryEntry) bool {
			return strings.EqualFold(e.Query, query)
		})
		updated := append([]core.HistoryEntry{{Query: query, Timestamp: r.now()}}, entries...)
		if len(updated) > storage.MaxHistoryEntries {
			updated = updated[:storage.MaxHistoryEntries]
		}
		return updated, nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes entries equal to query ignoring case.
func (r *SearchHistoryRepository) Remove(ctx context.Context, query string) error {
	return r.list.update(ctx, func(entries []core.HistoryEntry) ([]core.HistoryEntry, error) {
		return slices.DeleteFunc(entries, func(e core.HistoryEntry) bool {
			return strings.EqualFold(e.Query, query)
		}), nil
	})
}

// Clear removes all history.
func (r *SearchHistoryRepository) Clear(ctx context.Context) error {
	return r.list.clear(ctx)
}

func validHistoryQuery(query string) bool {
	n := utf8.RuneCountInString(query)
	return n > 0 && n <= storage.MaxHistoryQueryLength
}
