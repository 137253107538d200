package bookmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/aegis/core"
	"github.com/poiesic/aegis/storage"
	"github.com/poiesic/aegis/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	older = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
)

func newRepo(t *testing.T, seed ...core.Bookmark) storage.BookmarkRepository {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	if len(seed) > 0 {
		require.NoError(t, repos.Bookmarks.Replace(context.Background(), seed))
	}
	return repos.Bookmarks
}

func document(items ...string) []byte {
	return []byte(fmt.Sprintf(`{"version":"1.0","exportDate":"2024-03-01T00:00:00Z","bookmarkCount":%d,"bookmarks":[%s]}`,
		len(items), strings.Join(items, ",")))
}

func item(id string, ts time.Time) string {
	return fmt.Sprintf(`{"resourceId":%q,"timestamp":%d}`, id, ts.UnixMilli())
}

func TestNewExport(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t,
		core.Bookmark{ResourceID: "pacer", Timestamp: newer},
		core.Bookmark{ResourceID: "gone", Timestamp: older},
	)

	t.Run("bookmarks only", func(t *testing.T) {
		export, err := NewExport(ctx, repo, nil)
		require.NoError(t, err)

		assert.Equal(t, FormatVersion, export.Version)
		assert.Equal(t, 2, export.BookmarkCount)
		_, err = time.Parse(time.RFC3339, export.ExportDate)
		assert.NoError(t, err)
		require.Len(t, export.Bookmarks, 2)
		assert.Equal(t, ExportedItem{
			ResourceID:   "pacer",
			Timestamp:    newer.UnixMilli(),
			BookmarkedAt: "2024-02-01T00:00:00Z",
		}, export.Bookmarks[0])
		assert.Nil(t, export.Resources)

		data, err := json.Marshal(export)
		require.NoError(t, err)
		assert.NotContains(t, string(data), `"resources"`)
	})

	t.Run("with resources", func(t *testing.T) {
		catalog := []core.Resource{{ID: "whitepages"}, {ID: "pacer", Name: "PACER"}}
		export, err := NewExport(ctx, repo, catalog)
		require.NoError(t, err)

		require.Len(t, export.Resources, 1)
		assert.Equal(t, "PACER", export.Resources[0].Name)
	})

	t.Run("empty store", func(t *testing.T) {
		export, err := NewExport(ctx, newRepo(t), nil)
		require.NoError(t, err)
		assert.Zero(t, export.BookmarkCount)
		assert.NotNil(t, export.Bookmarks)
	})
}

func TestExport_ImportsCleanly(t *testing.T) {
	ctx := context.Background()
	source := newRepo(t,
		core.Bookmark{ResourceID: "pacer", Timestamp: newer},
		core.Bookmark{ResourceID: "whitepages", Timestamp: older},
	)
	export, err := NewExport(ctx, source, nil)
	require.NoError(t, err)
	data, err := json.Marshal(export)
	require.NoError(t, err)

	target := newRepo(t)
	result, err := Import(ctx, target, data)
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{ImportedCount: 2}, result)

	want, err := source.List(ctx)
	require.NoError(t, err)
	got, err := target.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		keyword string
	}{
		{"empty", "", ErrEmptyInput, "empty"},
		{"whitespace", "  \n", ErrEmptyInput, "empty"},
		{"malformed", "{not json", ErrInvalidJSON, "JSON"},
		{"array document", "[]", ErrInvalidFormat, "format"},
		{"string document", `"hi"`, ErrInvalidFormat, "format"},
		{"missing version", `{"exportDate":"x","bookmarkCount":0,"bookmarks":[]}`, ErrUnsupportedVersion, "version"},
		{"wrong version", `{"version":"2.0","exportDate":"x","bookmarkCount":0,"bookmarks":[]}`, ErrUnsupportedVersion, "version"},
		{"missing export date", `{"version":"1.0","bookmarkCount":0,"bookmarks":[]}`, ErrMissingExportDate, "export date"},
		{"missing count", `{"version":"1.0","exportDate":"x","bookmarks":[]}`, ErrMissingBookmarkCount, "bookmark count"},
		{"string count", `{"version":"1.0","exportDate":"x","bookmarkCount":"2","bookmarks":[]}`, ErrMissingBookmarkCount, "bookmark count"},
		{"bookmarks object", `{"version":"1.0","exportDate":"x","bookmarkCount":0,"bookmarks":{}}`, ErrBookmarksNotArray, "array"},
		{"missing resource id", string(document(`{"timestamp":1}`)), ErrInvalidResourceID, "resourceId"},
		{"blank resource id", string(document(`{"resourceId":"  ","timestamp":1}`)), ErrInvalidResourceID, "resourceId"},
		{"non-object bookmark", string(document(`42`)), ErrInvalidResourceID, "resourceId"},
		{"string timestamp", string(document(`{"resourceId":"a","timestamp":"now"}`)), ErrInvalidTimestamp, "timestamp"},
		{"negative timestamp", string(document(`{"resourceId":"a","timestamp":-1}`)), ErrInvalidTimestamp, "timestamp"},
		{"no bookmarks", string(document()), ErrNoValidBookmarks, "No valid bookmarks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.keyword)
		})
	}
}

func TestImport_Merge(t *testing.T) {
	ctx := context.Background()

	t.Run("adds new bookmarks to existing ones", func(t *testing.T) {
		repo := newRepo(t, core.Bookmark{ResourceID: "existing", Timestamp: older})

		result, err := Import(ctx, repo, document(item("resource-1", newer), item("resource-2", newer)))
		require.NoError(t, err)
		assert.Equal(t, 2, result.ImportedCount)
		assert.Zero(t, result.SkippedCount)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("skips bookmarks already present", func(t *testing.T) {
		repo := newRepo(t, core.Bookmark{ResourceID: "resource-1", Timestamp: older})

		result, err := Import(ctx, repo, document(item("resource-1", older), item("resource-2", older)))
		require.NoError(t, err)
		assert.Equal(t, &ImportResult{ImportedCount: 1, SkippedCount: 1}, result)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("keeps the later timestamp", func(t *testing.T) {
		repo := newRepo(t,
			core.Bookmark{ResourceID: "a", Timestamp: older},
			core.Bookmark{ResourceID: "b", Timestamp: newer},
		)

		_, err := Import(ctx, repo, document(item("a", newer), item("b", older)))
		require.NoError(t, err)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []core.Bookmark{
			{ResourceID: "a", Timestamp: newer},
			{ResourceID: "b", Timestamp: newer},
		}, list)
	})

	t.Run("stores newest first", func(t *testing.T) {
		repo := newRepo(t)

		_, err := Import(ctx, repo, document(item("old", older), item("new", newer)))
		require.NoError(t, err)

		ids, err := repo.IDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"new", "old"}, ids)
	})

	t.Run("repeated ids count once", func(t *testing.T) {
		repo := newRepo(t)

		result, err := Import(ctx, repo, document(item("a", older), item("a", newer)))
		require.NoError(t, err)
		assert.Equal(t, 1, result.ImportedCount)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, newer, list[0].Timestamp)
	})

	t.Run("caps the merged list", func(t *testing.T) {
		repo := newRepo(t)

		items := make([]string, 0, storage.MaxBookmarks+5)
		for i := range storage.MaxBookmarks + 5 {
			items = append(items, item(fmt.Sprintf("r-%d", i), older.Add(time.Duration(i)*time.Minute)))
		}
		_, err := Import(ctx, repo, document(items...))
		require.NoError(t, err)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, storage.MaxBookmarks, count)
	})

	t.Run("invalid data leaves the store untouched", func(t *testing.T) {
		repo := newRepo(t, core.Bookmark{ResourceID: "keep", Timestamp: older})

		_, err := Import(ctx, repo, []byte(`{"version":"0.9"}`))
		require.ErrorIs(t, err, ErrUnsupportedVersion)

		ids, err := repo.IDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"keep"}, ids)
	})
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "aegis-bookmarks-2024-02-01.json", FileName(newer))
}
