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


package storage

import (
	"context"

	"github.com/poiesic/aegis/core"
)

const (
	// MaxBookmarks is the most bookmarks kept; the oldest are dropped first.
	MaxBookmarks = 500

	// MaxHistoryEntries is the most search history entries kept.
	MaxHistoryEntries = 10

	// MaxHistoryQueryLength is the longest query, after trimming, recorded in history.
	MaxHistoryQueryLength = 1000

	// MaxPresets is the most filter presets that can be saved.
	MaxPresets = 10

	// MaxPresetNameLength is the longest preset name, after trimming.
	MaxPresetNameLength = 100
)

// Store is a simple key/value store.
// Implementations must be thread-safe and support concurrent access.
type Store interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Update atomically replaces the value under key with the result of fn.
	// fn receives nil when the key doesn't exist. Returning a nil value
	// deletes the key. If fn returns an error nothing is written.
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error

	// Close closes the store and releases resources.
	Close() error
}

// BookmarkRepository manages bookmarked resources.
type BookmarkRepository interface {
	// List returns every bookmark, newest first.
	List(ctx context.Context) ([]core.Bookmark, error)

	// IDs returns the bookmarked resource ids, newest first.
	IDs(ctx context.Context) ([]string, error)

	// Has reports whether resourceID is bookmarked.
	Has(ctx context.Context, resourceID string) (bool, error)

	// Add bookmarks resourceID. The id is trimmed; empty ids and ids that are
	// already bookmarked are ignored. Reports whether a bookmark was added.
	Add(ctx context.Context, resourceID string) (bool, error)

	// Remove deletes the bookmark for resourceID if present.
	Remove(ctx context.Context, resourceID string) error

	// Toggle adds or removes the bookmark and returns the new state.
	Toggle(ctx context.Context, resourceID string) (bool, error)

	// Replace overwrites every bookmark with the given list, truncated to MaxBookmarks.
	Replace(ctx context.Context, bookmarks []core.Bookmark) error

	// Clear removes every bookmark.
	Clear(ctx context.Context) error

	// Count returns the number of bookmarks.
	Count(ctx context.Context) (int, error)
}

// SearchHistoryRepository manages recently executed queries.
type SearchHistoryRepository interface {
	// List returns the history, newest first.
	List(ctx context.Context) ([]core.HistoryEntry, error)

	// Add records query at the front of the history. The query is trimmed;
	// queries that are empty or longer than MaxHistoryQueryLength are
	// ignored. An existing entry equal ignoring case is replaced.
	// Reports whether the query was recorded.
	Add(ctx context.Context, query string) (bool, error)

	// Remove deletes entries equal to query ignoring case.
	Remove(ctx context.Context, query string) error

	// Clear removes all history.
	Clear(ctx context.Context) error
}

// PresetRepository manages saved filter presets.
type PresetRepository interface {
	// List returns every preset in the order they were first saved.
	List(ctx context.Context) ([]core.FilterPreset, error)

	// Save creates a preset, or updates the one whose name matches ignoring
	// case, keeping its id and creation time.
	// Returns ErrInvalidPresetName or ErrPresetLimitReached.
	Save(ctx context.Context, name string, filters core.PresetFilters) (*core.FilterPreset, error)

	// Load returns the preset with id.
	// Returns ErrNotFound if the preset doesn't exist.
	Load(ctx context.Context, id string) (*core.FilterPreset, error)

	// Delete removes the preset with id and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// UniqueName returns base if no preset uses it, otherwise the first free
	// "base (n)" for n = 1, 2, ...
	UniqueName(ctx context.Context, base string) (string, error)
}
