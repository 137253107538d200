package search

import (
	"github.com/poiesic/aegis/core"
)

func boolPtr(b bool) *bool { return &b }

func testCategories() []core.Category {
	return []core.Category{
		{ID: "people-search", Name: "People Search", Description: "Find people by name or phone", Slug: "people-search", Tags: []string{"people", "phone"}},
		{ID: "court-records", Name: "Court Records", Description: "Dockets and filings", Slug: "court-records", Tags: []string{"legal"}},
		{ID: "social", Name: "Social Media", Description: "Profiles and posts", Slug: "social", Tags: nil},
	}
}

func testResources() []core.Resource {
	return []core.Resource{
		{
			ID: "whitepages", Name: "Whitepages", Description: "People search by name and phone number",
			Category: "people-search", Region: core.RegionUS, RiskLevel: core.RiskLow, Cost: core.CostFreemium,
			Type: core.TypeLookup, Tags: []string{"people", "phone"}, LastVerified: "2024-01-15T10:30:00Z",
		},
		{
			ID: "pacer", Name: "PACER", Description: "Federal court electronic records",
			Category: "court-records", Region: core.RegionUSFederal, RiskLevel: core.RiskNone, Cost: core.CostPaid,
			Type: core.TypeCourtRecords, Tags: []string{"court", "federal"}, LastVerified: "2024-03-01T00:00:00Z",
			AuthRequired: true, APIAvailable: boolPtr(true),
		},
		{
			ID: "courtlistener", Name: "CourtListener", Description: "Free legal research and court opinions",
			Category: "court-records", Region: core.RegionUSFederal, RiskLevel: core.RiskNone, Cost: core.CostFree,
			Type: core.TypeDatabase, Tags: []string{"court", "opinions"}, LastVerified: "2023-11-20T00:00:00Z",
			APIAvailable: boolPtr(false),
		},
		{
			ID: "sherlock", Name: "Sherlock", Description: "Hunt down social media accounts by username",
			Category: "social", Region: core.RegionGlobal, RiskLevel: core.RiskMedium, Cost: core.CostFree,
			Type: core.TypeTool, Tags: []string{"username", "social media"}, LastVerified: "not a date",
		},
	}
}

func ids(resources []core.Resource) []string {
	result := make([]string, len(resources))
	for i, r := range resources {
		result[i] = r.ID
	}
	return result
}
