package search

import (
	"strings"

	"github.com/poiesic/aegis/core"
)

// Searchable is a record that exposes the text fields search inspects.
type Searchable interface {
	SearchFields() []string
}

// Search returns the records for which any searchable field matches query,
// in input order.
//
// An empty or whitespace-only query, or one with neither terms nor phrases,
// returns every record. A query exceeding MaxQueryLength returns none.
func Search[T Searchable](records []T, query string) []T {
	if strings.TrimSpace(query) == "" {
		return clone(records)
	}

	parsed := ParseQuery(query)
	if parsed.ExceedsLimit {
		return []T{}
	}
	if parsed.IsEmpty() {
		return clone(records)
	}

	return Filter(records, parsed)
}

// Filter returns the records matching an already parsed query.
func Filter[T Searchable](records []T, query Query) []T {
	result := make([]T, 0, len(records))
	for _, record := range records {
		if matchesAny(record.SearchFields(), query) {
			result = append(result, record)
		}
	}
	return result
}

// SearchCategories searches names, descriptions and tags.
func SearchCategories(categories []core.Category, query string) []core.Category {
	return Search(categories, query)
}

// SearchResources searches names, descriptions, tags and types.
func SearchResources(resources []core.Resource, query string) []core.Resource {
	return Search(resources, query)
}

func matchesAny(fields []string, query Query) bool {
	for _, field := range fields {
		if query.Matches(field) {
			return true
		}
	}
	return false
}

func clone[T any](records []T) []T {
	if records == nil {
		return []T{}
	}
	return append(make([]T, 0, len(records)), records...)
}
