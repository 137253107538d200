package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/aegis/core"
	"github.com/poiesic/aegis/search"
	"github.com/poiesic/aegis/storage"
)

const shutdownTimeout = 5 * time.Second

// Catalog is the read-only record source the API serves.
type Catalog interface {
	search.Source
	CategoryBySlug(slug string) (core.Category, bool)
	ResourceByID(id string) (core.Resource, bool)
	ResourcesByCategory(categoryID string) []core.Resource
}

// Stores bundles the per-user state repositories.
type Stores struct {
	Bookmarks storage.BookmarkRepository
	History   storage.SearchHistoryRepository
	Presets   storage.PresetRepository
}

// Server serves the API.
type Server struct {
	catalog  Catalog
	stores   Stores
	searcher *search.Searcher
	engine   *gin.Engine
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a Server and registers its routes.
func New(catalog Catalog, stores Stores, opts ...Option) (*Server, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if stores.Bookmarks == nil || stores.History == nil || stores.Presets == nil {
		return nil, ErrStoresRequired
	}

	s := &Server{
		catalog: catalog,
		stores:  stores,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	searcher, err := search.NewSearcher(catalog, search.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.searcher = searcher

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), requestLogger(s.logger), securityHeaders())
	s.routes(s.engine.Group("/api"))

	return s, nil
}

func (s *Server) routes(api *gin.RouterGroup) {
	api.GET("/health", s.health)

	api.GET("/categories", s.listCategories)
	api.GET("/categories/:slug", s.getCategory)
	api.GET("/resources", s.listResources)
	api.GET("/resources/:id", s.getResource)
	api.GET("/search", s.search)

	bookmarks := api.Group("/bookmarks")
	bookmarks.GET("", s.listBookmarks)
	bookmarks.DELETE("", s.clearBookmarks)
	bookmarks.GET("/export", s.exportBookmarks)
	bookmarks.POST("/import", s.importBookmarks)
	bookmarks.POST("/:id", s.addBookmark)
	bookmarks.DELETE("/:id", s.removeBookmark)

	history := api.Group("/history")
	history.GET("", s.listHistory)
	history.POST("", s.addHistory)
	history.DELETE("", s.clearHistory)
	history.DELETE("/:query", s.removeHistory)

	presets := api.Group("/presets")
	presets.GET("", s.listPresets)
	presets.POST("", s.savePreset)
	presets.GET("/:id", s.getPreset)
	presets.DELETE("/:id", s.deletePreset)
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("api stopped")
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"categories": len(s.catalog.Categories()),
		"resources":  len(s.catalog.Resources()),
	})
}

// fail writes an error response, logging server-side failures.
func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
