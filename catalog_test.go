package aegis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/aegis/config"
	"github.com/poiesic/aegis/dataset"
	"github.com/poiesic/aegis/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "dataset/testdata/catalog"

func TestOpen(t *testing.T) {
	t.Run("loads dataset and opens store", func(t *testing.T) {
		catalog, err := Open(fixtureDir, filepath.Join(t.TempDir(), "store"))
		require.NoError(t, err)
		defer catalog.Close()

		assert.Equal(t, []string{"whitepages", "pacer"}, catalog.Dataset().ResourceIDs())
		assert.NotNil(t, catalog.Bookmarks())
		assert.NotNil(t, catalog.History())
		assert.NotNil(t, catalog.Presets())
	})

	t.Run("strict rejects bad records", func(t *testing.T) {
		_, err := Open(fixtureDir, "", WithStrict(), WithInMemoryStore())
		assert.ErrorIs(t, err, dataset.ErrInvalidRecord)
	})

	t.Run("store path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(file, []byte("test"), 0o644))

		catalog, err := Open(fixtureDir, file)
		assert.Error(t, err)
		assert.Nil(t, catalog)
	})

	t.Run("missing data dir", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing"), "", WithInMemoryStore())
		assert.ErrorIs(t, err, dataset.ErrReadFailed)
	})
}

func TestOpenConfig(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.DataDir = fixtureDir
	cfg.StorePath = filepath.Join(t.TempDir(), "store")

	catalog, err := OpenConfig(cfg)
	require.NoError(t, err)
	require.NoError(t, catalog.Close())

	cfg.Strict = true
	_, err = OpenConfig(cfg, WithInMemoryStore())
	assert.ErrorIs(t, err, dataset.ErrInvalidRecord)
}

func TestCatalog_Services(t *testing.T) {
	catalog, err := Open(fixtureDir, "", WithInMemoryStore())
	require.NoError(t, err)
	defer catalog.Close()

	t.Run("searcher", func(t *testing.T) {
		searcher, err := catalog.NewSearcher()
		require.NoError(t, err)
		response := searcher.Run(search.Request{Query: "federal"})
		require.Len(t, response.Resources, 1)
		assert.Equal(t, "pacer", response.Resources[0].ID)
	})

	t.Run("link checker", func(t *testing.T) {
		checker, err := catalog.NewLinkChecker()
		require.NoError(t, err)
		checker.Release()
	})

	t.Run("server shares the store", func(t *testing.T) {
		srv, err := catalog.NewServer()
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookmarks/pacer", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		has, err := catalog.Bookmarks().Has(context.Background(), "pacer")
		require.NoError(t, err)
		assert.True(t, has)
	})
}
