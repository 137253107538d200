package search

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/poiesic/aegis/core"
)

// SortField names the attribute resources are ordered by.
type SortField string

const (
	SortByName     SortField = "name"
	SortByCategory SortField = "category"
	SortByRisk     SortField = "risk"
	SortByDate     SortField = "date"
)

// Valid reports whether f is a known sort field.
func (f SortField) Valid() bool {
	switch f {
	case SortByName, SortByCategory, SortByRisk, SortByDate:
		return true
	}
	return false
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// SortConfig selects the field and direction for SortResources.
type SortConfig struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// ParseSortConfig builds a SortConfig from request parameters. An empty field
// means no sorting and yields nil; an empty order defaults to ascending.
func ParseSortConfig(field, order string) (*SortConfig, error) {
	if field == "" {
		return nil, nil
	}
	f := SortField(field)
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortField, field)
	}

	o := SortOrder(order)
	switch o {
	case "":
		o = Ascending
	case Ascending, Descending:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortOrder, order)
	}
	return &SortConfig{Field: f, Order: o}, nil
}

// SortResources returns a sorted copy of resources. A nil config keeps the
// input order.
//
// Names and categories compare case-insensitively, risk levels by rank with
// unknown levels last, and dates chronologically with unparseable dates
// treated as later than any real date. Ties are broken by id ascending
// whatever the direction, so the result is deterministic.
func SortResources(resources []core.Resource, config *SortConfig) []core.Resource {
	result := clone(resources)
	if config == nil {
		return result
	}

	keyed := make([]keyedResource, len(result))
	for i, resource := range result {
		keyed[i] = keyedResource{resource: resource, key: newSortKey(resource, config.Field)}
	}

	desc := config.Order == Descending
	slices.SortStableFunc(keyed, func(a, b keyedResource) int {
		c := a.key.compare(b.key)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.resource.ID, b.resource.ID)
	})

	for i := range keyed {
		result[i] = keyed[i].resource
	}
	return result
}

type keyedResource struct {
	resource core.Resource
	key      sortKey
}

type sortKey struct {
	text  string
	rank  int
	date  time.Time
	dated bool
}

func newSortKey(resource core.Resource, field SortField) sortKey {
	switch field {
	case SortByName:
		return sortKey{text: strings.ToLower(resource.Name)}
	case SortByCategory:
		return sortKey{text: strings.ToLower(resource.Category)}
	case SortByRisk:
		return sortKey{rank: resource.RiskLevel.Rank()}
	case SortByDate:
		t, err := dateparse.ParseIn(resource.LastVerified, time.UTC)
		if err != nil {
			return sortKey{}
		}
		return sortKey{date: t, dated: true}
	}
	return sortKey{}
}

func (k sortKey) compare(other sortKey) int {
	if c := strings.Compare(k.text, other.text); c != 0 {
		return c
	}
	if c := cmp.Compare(k.rank, other.rank); c != 0 {
		return c
	}
	switch {
	case k.dated && other.dated:
		return k.date.Compare(other.date)
	case k.dated:
		return -1
	case other.dated:
		return 1
	}
	return 0
}
