package search

import (
	"slices"
	"strings"

	"github.com/poiesic/aegis/core"
)

// Facets is a multi-select filter. Each non-empty facet restricts results to
// resources whose field equals one of its values; facets combine with AND.
type Facets struct {
	Categories []string `json:"categories,omitempty"`
	Regions    []string `json:"regions,omitempty"`
	RiskLevels []string `json:"riskLevels,omitempty"`
	Costs      []string `json:"costs,omitempty"`
}

// IsEmpty reports whether no facet has a selection.
func (f Facets) IsEmpty() bool {
	return len(f.Categories) == 0 && len(f.Regions) == 0 &&
		len(f.RiskLevels) == 0 && len(f.Costs) == 0
}

// FacetsFromPreset converts saved preset filters into Facets.
func FacetsFromPreset(filters core.PresetFilters) Facets {
	return Facets{
		Categories: filters.Categories,
		Regions:    filters.Regions,
		RiskLevels: filters.RiskLevels,
		Costs:      filters.Costs,
	}
}

// Preset converts Facets into the form stored in a filter preset.
func (f Facets) Preset() core.PresetFilters {
	return core.PresetFilters{
		Categories: slices.Clone(f.Categories),
		Regions:    slices.Clone(f.Regions),
		RiskLevels: slices.Clone(f.RiskLevels),
		Costs:      slices.Clone(f.Costs),
	}
}

// FilterResources keeps the resources that satisfy every non-empty facet.
// Matching is exact and case-sensitive.
func FilterResources(resources []core.Resource, facets Facets) []core.Resource {
	if facets.IsEmpty() {
		return clone(resources)
	}

	result := make([]core.Resource, 0, len(resources))
	for _, resource := range resources {
		if !allows(facets.Categories, resource.Category) ||
			!allows(facets.Regions, string(resource.Region)) ||
			!allows(facets.RiskLevels, string(resource.RiskLevel)) ||
			!allows(facets.Costs, string(resource.Cost)) {
			continue
		}
		result = append(result, resource)
	}
	return result
}

func allows(selected []string, value string) bool {
	return len(selected) == 0 || slices.Contains(selected, value)
}

// ParseFilterParam splits a comma-separated parameter into trimmed,
// non-empty values.
func ParseFilterParam(value string) []string {
	values := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

// EncodeFilterParam joins values into a comma-separated parameter.
func EncodeFilterParam(values []string) string {
	return strings.Join(values, ",")
}

// Criteria is the single-value filter used when no facet is selected.
// Empty strings and nil pointers impose no restriction.
type Criteria struct {
	Category     string `json:"category,omitempty"`
	Cost         string `json:"cost,omitempty"`
	Type         string `json:"type,omitempty"`
	RiskLevel    string `json:"riskLevel,omitempty"`
	Region       string `json:"region,omitempty"`
	AuthRequired *bool  `json:"authRequired,omitempty"`
	APIAvailable *bool  `json:"apiAvailable,omitempty"`
}

// IsEmpty reports whether the criteria restrict nothing.
func (c Criteria) IsEmpty() bool {
	return c == Criteria{}
}

// FilterResourcesBy keeps the resources matching every set criterion.
// A resource that does not declare api_available never matches an
// APIAvailable criterion.
func FilterResourcesBy(resources []core.Resource, criteria Criteria) []core.Resource {
	result := make([]core.Resource, 0, len(resources))
	for _, resource := range resources {
		if criteria.matches(resource) {
			result = append(result, resource)
		}
	}
	return result
}

func (c Criteria) matches(r core.Resource) bool {
	switch {
	case c.Category != "" && r.Category != c.Category:
		return false
	case c.Cost != "" && string(r.Cost) != c.Cost:
		return false
	case c.Type != "" && string(r.Type) != c.Type:
		return false
	case c.RiskLevel != "" && string(r.RiskLevel) != c.RiskLevel:
		return false
	case c.Region != "" && string(r.Region) != c.Region:
		return false
	case c.AuthRequired != nil && r.AuthRequired != *c.AuthRequired:
		return false
	case c.APIAvailable != nil && (r.APIAvailable == nil || *r.APIAvailable != *c.APIAvailable):
		return false
	}
	return true
}
