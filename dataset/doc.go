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


// Package dataset loads the category and resource catalog from JSON files
// and answers the lookups the rest of the system needs.
//
// Loading is lenient by default: records that are missing required fields or
// carry values of the wrong JSON type are dropped with a warning, and a file
// whose top level is not an array yields an empty collection. WithStrict turns
// both situations into errors, which is what the validate command wants.
package dataset
