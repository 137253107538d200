package bookmarks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/aegis/core"
	"github.com/poiesic/aegis/storage"
)

// ImportResult summarizes a successful import.
type ImportResult struct {
	// ImportedCount is the number of resources that were not bookmarked before.
	ImportedCount int `json:"importedCount"`
	// SkippedCount is the number of imported resources that were already bookmarked.
	SkippedCount int `json:"skippedCount"`
}

// Import validates data as an Export document and merges its bookmarks
// into repo. A resource bookmarked in both keeps the later timestamp. The
// merged list is stored newest first and capped at storage.MaxBookmarks.
func Import(ctx context.Context, repo storage.BookmarkRepository, data []byte) (*ImportResult, error) {
	imported, err := Parse(data)
	if err != nil {
		return nil, err
	}

	existing, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}

	merged := make(map[string]core.Bookmark, len(existing)+len(imported))
	for _, b := range existing {
		merged[b.ResourceID] = b
	}

	result := &ImportResult{}
	seen := make(map[string]bool, len(imported))
	for _, b := range imported {
		current, ok := merged[b.ResourceID]
		if !seen[b.ResourceID] {
			seen[b.ResourceID] = true
			if ok {
				result.SkippedCount++
			} else {
				result.ImportedCount++
			}
		}
		if !ok || b.Timestamp.After(current.Timestamp) {
			merged[b.ResourceID] = b
		}
	}

	list := make([]core.Bookmark, 0, len(merged))
	for _, b := range merged {
		list = append(list, b)
	}
	slices.SortFunc(list, func(a, b core.Bookmark) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.ResourceID, b.ResourceID)
	})

	if err := repo.Replace(ctx, list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}
	return result, nil
}

// Parse validates data as an Export document and returns its bookmarks.
// Checks run in a fixed order and the first failure is returned.
func Parse(data []byte) ([]core.Bookmark, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	fields, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrInvalidFormat
	}

	if version, ok := fields["version"].(string); !ok || version != FormatVersion {
		return nil, fmt.Errorf("%w: expected %q", ErrUnsupportedVersion, FormatVersion)
	}
	if exportDate, ok := fields["exportDate"].(string); !ok || exportDate == "" {
		return nil, ErrMissingExportDate
	}
	if _, ok := fields["bookmarkCount"].(float64); !ok {
		return nil, ErrMissingBookmarkCount
	}
	items, ok := fields["bookmarks"].([]any)
	if !ok {
		return nil, ErrBookmarksNotArray
	}

	bookmarks := make([]core.Bookmark, 0, len(items))
	for i, raw := range items {
		item, _ := raw.(map[string]any)
		resourceID, ok := item["resourceId"].(string)
		if !ok || strings.TrimSpace(resourceID) == "" {
			return nil, fmt.Errorf("%w: bookmark %d", ErrInvalidResourceID, i)
		}
		ts, ok := item["timestamp"].(float64)
		if !ok || ts < 0 || math.IsInf(ts, 0) || math.IsNaN(ts) {
			return nil, fmt.Errorf("%w: bookmark %d", ErrInvalidTimestamp, i)
		}
		bookmarks = append(bookmarks, core.Bookmark{
			ResourceID: strings.TrimSpace(resourceID),
			Timestamp:  time.UnixMilli(int64(ts)).UTC(),
		})
	}

	if len(bookmarks) == 0 {
		return nil, ErrNoValidBookmarks
	}
	return bookmarks, nil
}
