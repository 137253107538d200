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


package bookmarks

import "errors"

// Import errors, in the order they are checked.
var (
	ErrEmptyInput           = errors.New("import data is empty")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrInvalidFormat        = errors.New("invalid export format: expected an object")
	ErrUnsupportedVersion   = errors.New("missing or unsupported version")
	ErrMissingExportDate    = errors.New("missing export date")
	ErrMissingBookmarkCount = errors.New("missing bookmark count")
	ErrBookmarksNotArray    = errors.New("bookmarks must be an array")
	ErrInvalidResourceID    = errors.New("bookmark has a missing or empty resourceId")
	ErrInvalidTimestamp     = errors.New("bookmark has an invalid timestamp")
	ErrNoValidBookmarks     = errors.New("No valid bookmarks found in import data")
	ErrStorageFailed        = errors.New("failed to save imported bookmarks")
)
