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


package search

import "errors"

var (
	// ErrDatasetRequired is returned when a Searcher is created without a dataset.
	ErrDatasetRequired = errors.New("dataset required")

	// ErrUnknownSortField is returned when a sort field is not one of name, category, risk or date.
	ErrUnknownSortField = errors.New("unknown sort field")

	// ErrUnknownSortOrder is returned when a sort order is not asc or desc.
	ErrUnknownSortOrder = errors.New("unknown sort order")

	// ErrUnknownScope is returned when a search scope is not all, resources or categories.
	ErrUnknownScope = errors.New("unknown search scope")
)
