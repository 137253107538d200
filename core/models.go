package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Region is the primary geographic region a category or resource covers.
type Region string

const (
	RegionUS            Region = "US"
	RegionUSFederal     Region = "US-Federal"
	RegionUSState       Region = "US-State"
	RegionGlobal        Region = "Global"
	RegionInternational Region = "International"
)

// Regions lists every known region in display order.
var Regions = []Region{RegionUS, RegionUSFederal, RegionUSState, RegionGlobal, RegionInternational}

// Valid reports whether r is a known region.
func (r Region) Valid() bool {
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}

// RiskLevel describes the risk of using a resource. Levels are ordered
// none < low < medium < high.
type RiskLevel string

const (
	RiskNone   RiskLevel = "none"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// UnknownRiskRank is the rank assigned to unrecognized risk levels. It sorts
// after every known level.
const UnknownRiskRank = 999

// RiskLevels lists every known risk level in ascending order.
var RiskLevels = []RiskLevel{RiskNone, RiskLow, RiskMedium, RiskHigh}

// Rank returns the ordinal of the level, or UnknownRiskRank.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskNone:
		return 0
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return UnknownRiskRank
	}
}

// Valid reports whether r is a known risk level.
func (r RiskLevel) Valid() bool {
	return r.Rank() != UnknownRiskRank
}

// Cost is the pricing tier of a resource.
type Cost string

const (
	CostFree     Cost = "free"
	CostFreemium Cost = "freemium"
	CostPaid     Cost = "paid"
)

// Costs lists every known cost tier.
var Costs = []Cost{CostFree, CostFreemium, CostPaid}

// Valid reports whether c is a known cost tier.
func (c Cost) Valid() bool {
	return c == CostFree || c == CostFreemium || c == CostPaid
}

// ResourceType classifies what kind of thing a resource is.
type ResourceType string

const (
	TypeLookup           ResourceType = "lookup"
	TypeSearchEngine     ResourceType = "search_engine"
	TypeGovernmentData   ResourceType = "government_data"
	TypeAPI              ResourceType = "api"
	TypeDatabase         ResourceType = "database"
	TypeTool             ResourceType = "tool"
	TypeBrowserExtension ResourceType = "browser_extension"
	TypeMobileApp        ResourceType = "mobile_app"
	TypeDesktopApp       ResourceType = "desktop_app"
	TypeScript           ResourceType = "script"
	TypeFramework        ResourceType = "framework"
	TypeAggregator       ResourceType = "aggregator"
	TypeSocialMedia      ResourceType = "social_media"
	TypeCourtRecords     ResourceType = "court_records"
	TypePropertyRecords  ResourceType = "property_records"
	TypeCorporateRecords ResourceType = "corporate_records"
)

// ResourceTypes lists the closed set of resource types.
var ResourceTypes = []ResourceType{
	TypeLookup, TypeSearchEngine, TypeGovernmentData, TypeAPI,
	TypeDatabase, TypeTool, TypeBrowserExtension, TypeMobileApp,
	TypeDesktopApp, TypeScript, TypeFramework, TypeAggregator,
	TypeSocialMedia, TypeCourtRecords, TypePropertyRecords, TypeCorporateRecords,
}

// Valid reports whether t is one of the known resource types.
func (t ResourceType) Valid() bool {
	for _, known := range ResourceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Category groups related resources (e.g. "People Search", "Court Records").
type Category struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Slug            string   `json:"slug"`
	Subcategories   []string `json:"subcategories,omitempty"`
	Tags            []string `json:"tags"`
	Region          Region   `json:"region"`
	UpdatedAt       string   `json:"updated_at"` // ISO-8601, kept verbatim
	LongDescription string   `json:"long_description,omitempty"`
	Icon            string   `json:"icon,omitempty"`
	Color           string   `json:"color,omitempty"`
}

// SearchFields returns the text fields free-text search looks at.
func (c Category) SearchFields() []string {
	fields := make([]string, 0, 2+len(c.Tags))
	fields = append(fields, c.Name, c.Description)
	return append(fields, c.Tags...)
}

// Resource is a single OSINT tool, database, service or link.
type Resource struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	URL             string       `json:"url"`
	Description     string       `json:"description"`
	Category        string       `json:"category"`
	Subcategory     string       `json:"subcategory,omitempty"`
	Region          Region       `json:"region"`
	RiskLevel       RiskLevel    `json:"risk_level"`
	AuthRequired    bool         `json:"auth_required"`
	Cost            Cost         `json:"cost"`
	Type            ResourceType `json:"type"`
	Tags            []string     `json:"tags"`
	LastVerified    string       `json:"last_verified"` // ISO-8601, kept verbatim
	AlternativeURLs []string     `json:"alternative_urls,omitempty"`
	APIDocs         string       `json:"api_docs,omitempty"`
	APIAvailable    *bool        `json:"api_available,omitempty"`
	LongDescription string       `json:"long_description,omitempty"`
	UseCases        []string     `json:"use_cases,omitempty"`
	Limitations     string       `json:"limitations,omitempty"`
	LegalNotes      string       `json:"legal_notes,omitempty"`
	Languages       []string     `json:"languages,omitempty"`
}

// SearchFields returns the text fields free-text search looks at.
func (r Resource) SearchFields() []string {
	fields := make([]string, 0, 3+len(r.Tags))
	fields = append(fields, r.Name, r.Description)
	fields = append(fields, r.Tags...)
	return append(fields, string(r.Type))
}

// HasAPI reports whether the resource advertises an API.
func (r Resource) HasAPI() bool {
	return r.APIAvailable != nil && *r.APIAvailable
}

// URLs returns every non-empty URL the resource references: the primary URL,
// alternatives, then API docs.
func (r Resource) URLs() []string {
	urls := make([]string, 0, 2+len(r.AlternativeURLs))
	if r.URL != "" {
		urls = append(urls, r.URL)
	}
	for _, alt := range r.AlternativeURLs {
		if alt != "" {
			urls = append(urls, alt)
		}
	}
	if r.APIDocs != "" {
		urls = append(urls, r.APIDocs)
	}
	return urls
}

// Bookmark records that a resource was saved by the user.
type Bookmark struct {
	ResourceID string    `json:"resourceId"`
	Timestamp  time.Time `json:"timestamp"`
}

// HistoryEntry is a previously executed search query.
type HistoryEntry struct {
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// PresetFilters is the facet selection stored in a filter preset.
type PresetFilters struct {
	Categories []string `json:"categories,omitempty"`
	Regions    []string `json:"regions,omitempty"`
	RiskLevels []string `json:"riskLevels,omitempty"`
	Costs      []string `json:"costs,omitempty"`
}

// FilterPreset is a named, saved facet selection.
type FilterPreset struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Filters   PresetFilters `json:"filters"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
