package bookmarks

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/aegis/core"
	"github.com/poiesic/aegis/storage"
)

// FormatVersion is the export format version written and accepted.
const FormatVersion = "1.0"

// Export is a portable snapshot of the user's bookmarks.
type Export struct {
	Version       string          `json:"version"`
	ExportDate    string          `json:"exportDate"`
	BookmarkCount int             `json:"bookmarkCount"`
	Bookmarks     []ExportedItem  `json:"bookmarks"`
	Resources     []core.Resource `json:"resources,omitempty"`
}

// ExportedItem is one bookmark in an Export.
type ExportedItem struct {
	ResourceID   string `json:"resourceId"`
	Timestamp    int64  `json:"timestamp"`
	BookmarkedAt string `json:"bookmarkedAt"`
}

// NewExport snapshots the bookmarks in repo. When catalog is non-nil the
// full records of the bookmarked resources are included, in bookmark order;
// bookmarks whose resource is not in catalog are still exported.
func NewExport(ctx context.Context, repo storage.BookmarkRepository, catalog []core.Resource) (*Export, error) {
	bookmarks, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}

	export := &Export{
		Version:       FormatVersion,
		ExportDate:    time.Now().UTC().Format(time.RFC3339),
		BookmarkCount: len(bookmarks),
		Bookmarks:     make([]ExportedItem, 0, len(bookmarks)),
	}
	for _, b := range bookmarks {
		export.Bookmarks = append(export.Bookmarks, ExportedItem{
			ResourceID:   b.ResourceID,
			Timestamp:    b.Timestamp.UnixMilli(),
			BookmarkedAt: b.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	if catalog != nil {
		byID := make(map[string]core.Resource, len(catalog))
		for _, r := range catalog {
			byID[r.ID] = r
		}
		export.Resources = []core.Resource{}
		for _, b := range bookmarks {
			if r, ok := byID[b.ResourceID]; ok {
				export.Resources = append(export.Resources, r)
			}
		}
	}

	return export, nil
}

// FileName is the suggested file name for an export taken at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("aegis-bookmarks-%s.json", t.UTC().Format("2006-01-02"))
}
