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


// Package search implements free-text search, faceted filtering and sorting
// over the catalog.
//
// Queries support a small boolean language:
//   - Quoted phrases ("court records") must appear verbatim; when several are
//     given, any one of them is enough.
//   - Remaining text is split on the words AND / OR (case-insensitive). If AND
//     appears anywhere the whole query is conjunctive, otherwise disjunctive.
//
// Matching is case-insensitive substring matching against each searchable
// field of a record independently. There is no ranking: results keep the
// order of the input.
//
// Every function in this package is pure. Inputs are never mutated and
// results are always fresh slices, so callers may share a dataset across
// goroutines freely.
package search
