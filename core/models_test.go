package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "plain name", content: "my preset"},
		{name: "empty string", content: ""},
		{name: "long content", content: "This is a much longer preset name that should still hash consistently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	if IDFromContent("content1") == IDFromContent("content2") {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestRiskLevel_Rank(t *testing.T) {
	tests := []struct {
		level RiskLevel
		want  int
	}{
		{RiskNone, 0},
		{RiskLow, 1},
		{RiskMedium, 2},
		{RiskHigh, 3},
		{RiskLevel("extreme"), UnknownRiskRank},
		{RiskLevel(""), UnknownRiskRank},
		{RiskLevel("HIGH"), UnknownRiskRank},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.Rank(); got != tt.want {
				t.Errorf("Rank() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEnums_Valid(t *testing.T) {
	if !RegionUSFederal.Valid() || Region("EU").Valid() {
		t.Error("Region.Valid() mismatch")
	}
	if !CostFreemium.Valid() || Cost("cheap").Valid() {
		t.Error("Cost.Valid() mismatch")
	}
	if len(ResourceTypes) != 16 {
		t.Errorf("expected 16 resource types, got %d", len(ResourceTypes))
	}
	for _, rt := range ResourceTypes {
		if !rt.Valid() {
			t.Errorf("%q should be valid", rt)
		}
	}
	if ResourceType("website").Valid() {
		t.Error("unknown resource type reported valid")
	}
}

func TestSearchFields(t *testing.T) {
	category := Category{Name: "People", Description: "Find people", Tags: []string{"a", "b"}}
	if diff := cmp.Diff([]string{"People", "Find people", "a", "b"}, category.SearchFields()); diff != "" {
		t.Errorf("Category.SearchFields() mismatch (-want +got):\n%s", diff)
	}

	resource := Resource{Name: "Tool", Description: "Does things", Tags: []string{"x"}, Type: TypeAPI}
	if diff := cmp.Diff([]string{"Tool", "Does things", "x", "api"}, resource.SearchFields()); diff != "" {
		t.Errorf("Resource.SearchFields() mismatch (-want +got):\n%s", diff)
	}
}

func TestResource_URLs(t *testing.T) {
	resource := Resource{
		URL:             "https://example.com",
		AlternativeURLs: []string{"", "https://mirror.example.com"},
		APIDocs:         "https://example.com/docs",
	}
	want := []string{"https://example.com", "https://mirror.example.com", "https://example.com/docs"}
	if diff := cmp.Diff(want, resource.URLs()); diff != "" {
		t.Errorf("URLs() mismatch (-want +got):\n%s", diff)
	}

	if got := (Resource{}).URLs(); len(got) != 0 {
		t.Errorf("URLs() on empty resource = %v, want none", got)
	}
}

func TestResource_HasAPI(t *testing.T) {
	yes, no := true, false
	if (Resource{}).HasAPI() {
		t.Error("nil APIAvailable should report false")
	}
	if (Resource{APIAvailable: &no}).HasAPI() {
		t.Error("false APIAvailable should report false")
	}
	if !(Resource{APIAvailable: &yes}).HasAPI() {
		t.Error("true APIAvailable should report true")
	}
}
