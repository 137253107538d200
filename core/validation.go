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

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"unicode/utf8"
)

const (
	// MaxNameLength is the longest allowed category or resource name.
	MaxNameLength = 100
	// MinDescriptionLength is the shortest allowed description.
	MinDescriptionLength = 10
	// MaxDescriptionLength is the longest allowed description.
	MaxDescriptionLength = 500
)

var (
	kebabCase = regexp.MustCompile(`^[a-z0-9-]+$`)
	iso8601   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{3})?Z?$`)
	hexColor  = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// ValidateCategory validates a Category according to dataset rules.
//
// Validation rules:
//   - id, name, description, slug, region, updated_at must be set
//   - id and slug must be kebab-case
//   - region must be known
//   - updated_at must be ISO 8601
//   - tags must be non-empty
//   - color, when set, must be #RRGGBB
//   - name at most 100 characters, description 10..500 characters
//
// Every violation is reported; the returned error wraps ErrInvalidCategory
// and each specific sentinel.
func ValidateCategory(category *Category) error {
	if category == nil {
		return fmt.Errorf("%w: category is nil", ErrInvalidCategory)
	}

	var errs []error
	for field, value := range map[string]string{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
		"slug":        category.Slug,
		"region":      string(category.Region),
		"updated_at":  category.UpdatedAt,
	} {
		if value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingField, field))
		}
	}
	if len(errs) > 0 {
		return wrapAll(ErrInvalidCategory, category.ID, errs)
	}

	if !kebabCase.MatchString(category.ID) {
		errs = append(errs, fmt.Errorf("%w: id %q", ErrInvalidID, category.ID))
	}
	if !kebabCase.MatchString(category.Slug) {
		errs = append(errs, fmt.Errorf("%w: slug %q", ErrInvalidID, category.Slug))
	}
	if !category.Region.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidRegion, category.Region))
	}
	if !IsValidTimestamp(category.UpdatedAt) {
		errs = append(errs, fmt.Errorf("%w: updated_at %q", ErrInvalidTimestamp, category.UpdatedAt))
	}
	if len(category.Tags) == 0 {
		errs = append(errs, ErrEmptyTags)
	}
	if category.Color != "" && !hexColor.MatchString(category.Color) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidColor, category.Color))
	}
	errs = append(errs, validateText(category.Name, category.Description)...)

	return wrapAll(ErrInvalidCategory, category.ID, errs)
}

// ValidateResource validates a Resource according to dataset rules.
//
// Validation rules:
//   - id, name, url, description, category, region, risk_level, cost, type,
//     last_verified must be set
//   - id must be kebab-case
//   - url, alternative_urls and api_docs must be http/https
//   - region, risk_level, cost and type must be known values
//   - last_verified must be ISO 8601
//   - tags must be non-empty
//   - name at most 100 characters, description 10..500 characters
//
// NOT validated (checked across the dataset by ValidateIntegrity):
//   - that category references an existing category
func ValidateResource(resource *Resource) error {
	if resource == nil {
		return fmt.Errorf("%w: resource is nil", ErrInvalidResource)
	}

	var errs []error
	for field, value := range map[string]string{
		"id":            resource.ID,
		"name":          resource.Name,
		"url":           resource.URL,
		"description":   resource.Description,
		"category":      resource.Category,
		"region":        string(resource.Region),
		"risk_level":    string(resource.RiskLevel),
		"cost":          string(resource.Cost),
		"type":          string(resource.Type),
		"last_verified": resource.LastVerified,
	} {
		if value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingField, field))
		}
	}
	if len(errs) > 0 {
		return wrapAll(ErrInvalidResource, resource.ID, errs)
	}

	if !kebabCase.MatchString(resource.ID) {
		errs = append(errs, fmt.Errorf("%w: id %q", ErrInvalidID, resource.ID))
	}
	if !IsValidURL(resource.URL) {
		errs = append(errs, fmt.Errorf("%w: url %q", ErrInvalidURL, resource.URL))
	}
	for i, alt := range resource.AlternativeURLs {
		if !IsValidURL(alt) {
			errs = append(errs, fmt.Errorf("%w: alternative_urls[%d] %q", ErrInvalidURL, i, alt))
		}
	}
	if resource.APIDocs != "" && !IsValidURL(resource.APIDocs) {
		errs = append(errs, fmt.Errorf("%w: api_docs %q", ErrInvalidURL, resource.APIDocs))
	}
	if !resource.Region.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidRegion, resource.Region))
	}
	if !resource.RiskLevel.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidRiskLevel, resource.RiskLevel))
	}
	if !resource.Cost.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidCost, resource.Cost))
	}
	if !resource.Type.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidType, resource.Type))
	}
	if !IsValidTimestamp(resource.LastVerified) {
		errs = append(errs, fmt.Errorf("%w: last_verified %q", ErrInvalidTimestamp, resource.LastVerified))
	}
	if len(resource.Tags) == 0 {
		errs = append(errs, ErrEmptyTags)
	}
	errs = append(errs, validateText(resource.Name, resource.Description)...)

	return wrapAll(ErrInvalidResource, resource.ID, errs)
}

// ValidateIntegrity checks cross-record rules: resources must reference an
// existing category, and resource ids, category ids and category slugs must
// be unique.
func ValidateIntegrity(categories []Category, resources []Resource) []error {
	var errs []error

	categoryIDs := make(map[string]bool, len(categories))
	slugs := make(map[string]bool, len(categories))
	for _, category := range categories {
		if categoryIDs[category.ID] {
			errs = append(errs, fmt.Errorf("%w: category %q", ErrDuplicateID, category.ID))
		}
		categoryIDs[category.ID] = true

		if slugs[category.Slug] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateSlug, category.Slug))
		}
		slugs[category.Slug] = true
	}

	resourceIDs := make(map[string]bool, len(resources))
	for _, resource := range resources {
		if !categoryIDs[resource.Category] {
			errs = append(errs, fmt.Errorf("%w: resource %q references %q", ErrUnknownCategory, resource.ID, resource.Category))
		}
		if resourceIDs[resource.ID] {
			errs = append(errs, fmt.Errorf("%w: resource %q", ErrDuplicateID, resource.ID))
		}
		resourceIDs[resource.ID] = true
	}

	return errs
}

// IsValidURL reports whether raw parses as an absolute http or https URL.
func IsValidURL(raw string) bool {
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

// SanitizeURL returns raw when it is a valid http/https URL and "" otherwise.
func SanitizeURL(raw string) string {
	if IsValidURL(raw) {
		return raw
	}
	return ""
}

// FilterValidURLs returns only the valid http/https URLs of urls.
func FilterValidURLs(urls []string) []string {
	valid := make([]string, 0, len(urls))
	for _, u := range urls {
		if IsValidURL(u) {
			valid = append(valid, u)
		}
	}
	return valid
}

// IsValidTimestamp checks that ts looks like an ISO 8601 date-time.
func IsValidTimestamp(ts string) bool {
	return iso8601.MatchString(ts)
}

func validateText(name, description string) []error {
	var errs []error
	if utf8.RuneCountInString(name) > MaxNameLength {
		errs = append(errs, fmt.Errorf("%w: maximum is %d characters", ErrNameTooLong, MaxNameLength))
	}
	if n := utf8.RuneCountInString(description); n < MinDescriptionLength || n > MaxDescriptionLength {
		errs = append(errs, fmt.Errorf("%w: %d characters, must be between %d and %d",
			ErrDescriptionLength, n, MinDescriptionLength, MaxDescriptionLength))
	}
	return errs
}

func wrapAll(kind error, id string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w %q: %w", kind, id, errors.Join(errs...))
}
