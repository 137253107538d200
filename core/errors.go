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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidCategory indicates a Category failed validation.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidResource indicates a Resource failed validation.
	ErrInvalidResource = errors.New("invalid resource")

	// ErrMissingField indicates a required field is empty.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidID indicates an id or slug is not kebab-case.
	ErrInvalidID = errors.New("identifier must be kebab-case")

	// ErrInvalidRegion indicates an unknown Region value.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidRiskLevel indicates an unknown RiskLevel value.
	ErrInvalidRiskLevel = errors.New("invalid risk level")

	// ErrInvalidCost indicates an unknown Cost value.
	ErrInvalidCost = errors.New("invalid cost")

	// ErrInvalidType indicates an unknown ResourceType value.
	ErrInvalidType = errors.New("invalid resource type")

	// ErrInvalidURL indicates a URL that is malformed or not http/https.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrInvalidTimestamp indicates a date that is not ISO 8601.
	ErrInvalidTimestamp = errors.New("timestamp must be ISO 8601")

	// ErrEmptyTags indicates the tags list is empty.
	ErrEmptyTags = errors.New("tags must be a non-empty list")

	// ErrNameTooLong indicates a name longer than MaxNameLength.
	ErrNameTooLong = errors.New("name too long")

	// ErrDescriptionLength indicates a description outside the allowed range.
	ErrDescriptionLength = errors.New("description length out of range")

	// ErrInvalidColor indicates a color that is not #RRGGBB.
	ErrInvalidColor = errors.New("color must be a hex code like #3B82F6")

	// ErrUnknownCategory indicates a resource that references a missing category.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrDuplicateID indicates two records share an id.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrDuplicateSlug indicates two categories share a slug.
	ErrDuplicateSlug = errors.New("duplicate slug")
)
