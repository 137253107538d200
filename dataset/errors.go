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


package dataset

import "errors"

var (
	// ErrNotArray is returned in strict mode when a data file's top level is not a JSON array.
	ErrNotArray = errors.New("data file must contain a JSON array")

	// ErrInvalidRecord is returned in strict mode for a record that cannot be decoded.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrReadFailed is returned when a data file cannot be read.
	ErrReadFailed = errors.New("failed to read data file")
)
