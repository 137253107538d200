// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package aegis wires the catalog dataset, the per-user store and the
// services built on them.
//
//	catalog, err := aegis.Open("data", ".aegis")
//	if err != nil {
//		return err
//	}
//	defer catalog.Close()
//
//	searcher, err := catalog.NewSearcher()
//	response := searcher.Run(search.Request{Query: `"court records" AND federal`})
package aegis

import (
	"log/slog"

	"github.com/poiesic/aegis/config"
	"github.com/poiesic/aegis/dataset"
	"github.com/poiesic/aegis/linkcheck"
	"github.com/poiesic/aegis/search"
	"github.com/poiesic/aegis/server"
	"github.com/poiesic/aegis/storage"
	"github.com/poiesic/aegis/storage/badger"
)

// Catalog is a loaded dataset together with its per-user store.
type Catalog struct {
	dataset *dataset.Dataset
	repos   *badger.Repositories
	logger  *slog.Logger
}

// CatalogOption configures Open.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	strict   bool
	inMemory bool
	logger   *slog.Logger
}

// WithStrict rejects the dataset when any record fails to decode.
func WithStrict() CatalogOption {
	return func(o *catalogOptions) {
		o.strict = true
	}
}

// WithInMemoryStore keeps per-user state in memory instead of on disk.
func WithInMemoryStore() CatalogOption {
	return func(o *catalogOptions) {
		o.inMemory = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) CatalogOption {
	return func(o *catalogOptions) {
		o.logger = logger
	}
}

// Open loads the dataset under dataDir and opens the store at storePath.
func Open(dataDir, storePath string, opts ...CatalogOption) (*Catalog, error) {
	options := &catalogOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	datasetOpts := []dataset.Option{dataset.WithLogger(options.logger)}
	if options.strict {
		datasetOpts = append(datasetOpts, dataset.WithStrict())
	}
	ds, err := dataset.Load(dataDir, datasetOpts...)
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(storePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	options.logger.Debug("catalog opened",
		"dataDir", dataDir,
		"categories", len(ds.Categories()),
		"resources", len(ds.Resources()))

	return &Catalog{
		dataset: ds,
		repos:   badger.NewRepositories(backend),
		logger:  options.logger,
	}, nil
}

// OpenConfig opens the catalog described by cfg.
func OpenConfig(cfg *config.Config, opts ...CatalogOption) (*Catalog, error) {
	if cfg.Strict {
		opts = append(opts, WithStrict())
	}
	return Open(cfg.DataDir, cfg.StorePath, opts...)
}

// Close closes the store.
func (c *Catalog) Close() error {
	if err := c.repos.Close(); err != nil {
		c.logger.Error("error closing store", "err", err)
		return err
	}
	return nil
}

func (c *Catalog) Dataset() *dataset.Dataset {
	return c.dataset
}

func (c *Catalog) Bookmarks() storage.BookmarkRepository {
	return c.repos.Bookmarks
}

func (c *Catalog) History() storage.SearchHistoryRepository {
	return c.repos.History
}

func (c *Catalog) Presets() storage.PresetRepository {
	return c.repos.Presets
}

func (c *Catalog) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(c.dataset, append([]search.Option{search.WithLogger(c.logger)}, opts...)...)
}

// NewLinkChecker creates a checker; callers must Release it.
func (c *Catalog) NewLinkChecker(opts ...linkcheck.Option) (*linkcheck.Checker, error) {
	return linkcheck.NewChecker(append([]linkcheck.Option{linkcheck.WithLogger(c.logger)}, opts...)...)
}

func (c *Catalog) NewServer(opts ...server.Option) (*server.Server, error) {
	stores := server.Stores{
		Bookmarks: c.repos.Bookmarks,
		History:   c.repos.History,
		Presets:   c.repos.Presets,
	}
	return server.New(c.dataset, stores, append([]server.Option{server.WithLogger(c.logger)}, opts...)...)
}
