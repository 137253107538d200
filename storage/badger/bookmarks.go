package badger

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/aegis/core"
	"github.com/poiesic/aegis/storage"
)

// BookmarkRepository implements storage.BookmarkRepository for BadgerDB.
type BookmarkRepository struct {
	list *listStore[core.Bookmark]
	now  func() time.Time
}

var _ storage.BookmarkRepository = (*BookmarkRepository)(nil)

// NewBookmarkRepository creates a new BookmarkRepository.
func NewBookmarkRepository(backend *Backend) *BookmarkRepository {
	return &BookmarkRepository{
		list: newListStore(backend, bookmarksKey, storage.MarshalBookmarks, storage.UnmarshalBookmarks),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// List returns every bookmark, newest first. Entries with an empty
// resource id are skipped.
func (r *BookmarkRepository) List(ctx context.Context) ([]core.Bookmark, error) {
	bookmarks, err := r.list.load(ctx)
	if err != nil {
		return nil, err
	}
	valid := make([]core.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b.ResourceID != "" {
			valid = append(valid, b)
		}
	}
	return valid, nil
}

// IDs returns the bookmarked resource ids, newest first.
func (r *BookmarkRepository) IDs(ctx context.Context) ([]string, error) {
	bookmarks, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		ids[i] = b.ResourceID
	}
	return ids, nil
}

// Has reports whether resourceID is bookmarked.
func (r *BookmarkRepository) Has(ctx context.Context, resourceID string) (bool, error) {
	ids, err := r.IDs(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, resourceID), nil
}

// Add bookmarks resourceID at the front of the list.
func (r *BookmarkRepository) Add(ctx context.Context, resourceID string) (bool, error) {
	resourceID = strings.TrimSpace(resourceID)
	if resourceID == "" {
		return false, nil
	}

	added := false
	err := r.list.update(ctx, func(bookmarks []core.Bookmark) ([]core.Bookmark, error) {
		added = false
		if indexOfBookmark(bookmarks, resourceID) >= 0 {
			return bookmarks, nil
		}
		added = true
		return prependBookmark(bookmarks, core.Bookmark{ResourceID: resourceID, Timestamp: r.now()}), nil
	})
	return added, err
}

// Remove deletes the bookmark for resourceID.
func (r *BookmarkRepository) Remove(ctx context.Context, resourceID string) error {
	return r.list.update(ctx, func(bookmarks []core.Bookmark) ([]core.Bookmark, error) {
		return slices.DeleteFunc(bookmarks, func(b core.Bookmark) bool {
			return b.ResourceID == resourceID
		}), nil
	})
}

// Toggle adds the bookmark if absent or removes it if present, returning
// whether the resource is bookmarked afterwards.
func (r *BookmarkRepository) Toggle(ctx context.Context, resourceID string) (bool, error) {
	resourceID = strings.TrimSpace(resourceID)
	if resourceID == "" {
		return false, nil
	}

	state := false
	err := r.list.update(ctx, func(bookmarks []core.Bookmark) ([]core.Bookmark, error) {
		if i := indexOfBookmark(bookmarks, resourceID); i >= 0 {
			state = false
			return slices.Delete(bookmarks, i, i+1), nil
		}
		state = true
		return prependBookmark(bookmarks, core.Bookmark{ResourceID: resourceID, Timestamp: r.now()}), nil
	})
	return state, err
}

// Replace overwrites every bookmark.
func (r *BookmarkRepository) Replace(ctx context.Context, bookmarks []core.Bookmark) error {
	if len(bookmarks) > storage.MaxBookmarks {
		bookmarks = bookmarks[:storage.MaxBookmarks]
	}
	replacement := slices.Clone(bookmarks)
	return r.list.update(ctx, func(_ []core.Bookmark) ([]core.Bookmark, error) {
		return replacement, nil
	})
}

// Clear removes every bookmark.
func (r *BookmarkRepository) Clear(ctx context.Context) error {
	return r.list.clear(ctx)
}

// Count returns the number of bookmarks.
func (r *BookmarkRepository) Count(ctx context.Context) (int, error) {
	bookmarks, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(bookmarks), nil
}

func indexOfBookmark(bookmarks []core.Bookmark, resourceID string) int {
	return slices.IndexFunc(bookmarks, func(b core.Bookmark) bool {
		return b.ResourceID == resourceID
	})
}

func prependBookmark(bookmarks []core.Bookmark, bookmark core.Bookmark) []core.Bookmark {
	updated := append([]core.Bookmark{bookmark}, bookmarks...)
	if len(updated) > storage.MaxBookmarks {
		updated = updated[:storage.MaxBookmarks]
	}
	return updated
}
