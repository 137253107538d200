package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/poiesic/aegis/bookmarks"
	"github.com/poiesic/aegis/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/bookmarks/pacer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bookmarkState{ResourceID: "pacer", Bookmarked: true, Changed: true}, decode[bookmarkState](t, rec))

	rec = do(t, s, http.MethodPost, "/api/bookmarks/pacer", "")
	assert.False(t, decode[bookmarkState](t, rec).Changed, "second add is a no-op")

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodPost, "/api/bookmarks/missing", "").Code)

	rec = do(t, s, http.MethodGet, "/api/bookmarks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Bookmarks []core.Bookmark `json:"bookmarks"`
		Total     int             `json:"total"`
	}](t, rec)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "pacer", list.Bookmarks[0].ResourceID)

	t.Run("export", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/bookmarks/export?resources=true", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "aegis-bookmarks-")

		export := decode[bookmarks.Export](t, rec)
		assert.Equal(t, "1.0", export.Version)
		assert.Equal(t, 1, export.BookmarkCount)
		require.Len(t, export.Resources, 1)
		assert.Equal(t, "PACER", export.Resources[0].Name)
	})

	t.Run("remove", func(t *testing.T) {
		rec := do(t, s, http.MethodDelete, "/api/bookmarks/pacer", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, bookmarkState{ResourceID: "pacer", Changed: true}, decode[bookmarkState](t, rec))

		rec = do(t, s, http.MethodDelete, "/api/bookmarks/pacer", "")
		assert.False(t, decode[bookmarkState](t, rec).Changed)
	})

	t.Run("import", func(t *testing.T) {
		doc := `{"version":"1.0","exportDate":"2024-01-01T00:00:00Z","bookmarkCount":2,` +
			`"bookmarks":[{"resourceId":"pacer","timestamp":1704067200000},{"resourceId":"whitepages","timestamp":1704067100000}]}`
		rec := do(t, s, http.MethodPost, "/api/bookmarks/import", doc)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, bookmarks.ImportResult{ImportedCount: 2}, decode[bookmarks.ImportResult](t, rec))

		rec = do(t, s, http.MethodPost, "/api/bookmarks/import", `{"version":"2.0"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[map[string]string](t, rec)["error"], "version")
	})

	t.Run("clear", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/api/bookmarks", "").Code)
		rec := do(t, s, http.MethodGet, "/api/bookmarks", "")
		assert.Contains(t, rec.Body.String(), `"total":0`)
	})
}

func TestHistoryRoutes(t *testing.T) {
	s := newTestServer(t)

	for _, q := range []string{"phone", "court records", "PHONE"} {
		rec := do(t, s, http.MethodPost, "/api/history", fmt.Sprintf(`{"query":%q}`, q))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/history", `{}`).Code)

	rec := do(t, s, http.MethodGet, "/api/history", "")
	history := decode[struct {
		History []core.HistoryEntry `json:"history"`
	}](t, rec).History
	require.Len(t, history, 2)
	assert.Equal(t, "PHONE", history[0].Query)

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/api/history/phone", "").Code)
	rec = do(t, s, http.MethodGet, "/api/history", "")
	assert.NotContains(t, rec.Body.String(), "PHONE")

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/api/history", "").Code)
	rec = do(t, s, http.MethodGet, "/api/history", "")
	assert.NotContains(t, rec.Body.String(), "court records")
}

func TestPresetRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/presets", `{"name":"Free federal","filters":{"regions":["US-Federal"],"costs":["free"]}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	preset := decode[core.FilterPreset](t, rec)
	assert.Equal(t, "Free federal", preset.Name)
	assert.Equal(t, []string{"US-Federal"}, preset.Filters.Regions)

	rec = do(t, s, http.MethodGet, "/api/presets/"+preset.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, preset.ID, decode[core.FilterPreset](t, rec).ID)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/presets/missing", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/presets", `{"filters":{}}`).Code)

	rec = do(t, s, http.MethodGet, "/api/presets", "")
	assert.Len(t, decode[struct {
		Presets []core.FilterPreset `json:"presets"`
	}](t, rec).Presets, 1)

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/api/presets/"+preset.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/api/presets/"+preset.ID, "").Code)
}

func TestPresetRoutes_Limit(t *testing.T) {
	s := newTestServer(t)

	for i := range 10 {
		rec := do(t, s, http.MethodPost, "/api/presets", fmt.Sprintf(`{"name":"preset %d"}`, i))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(t, s, http.MethodPost, "/api/presets", `{"name":"one too many"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "maximum of 10 presets")
}
