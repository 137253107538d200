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


// Package storage provides the persistence abstraction for per-user state:
// bookmarks, search history and saved filter presets.
//
// The catalog itself is static and never stored here. What is stored is small,
// user-owned state that the search front ends read and update.
//
// # Architecture
//
//   - Store: a key/value collaborator with Get, Set, Delete and an atomic
//     read-modify-write Update
//   - BookmarkRepository: saved resources, newest first, capped at 500
//   - SearchHistoryRepository: recent queries, newest first, capped at 10
//   - PresetRepository: named facet selections, capped at 10
//
// Each repository keeps one list under one key and rewrites it whole. Values
// are encoded with mus-go (see serialization.go).
//
// # Read failures
//
// A value that cannot be decoded is treated as empty and logged. User state
// is convenience data; a corrupt list must never make the catalog unusable.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	bookmarks := badger.NewBookmarkRepository(backend)
//	added, err := bookmarks.Add(ctx, "whitepages")
//
// Use in tests with in-memory storage:
//
//	repos, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
