package dataset

import (
	"github.com/poiesic/aegis/core"
)

// Issue is a single validation failure.
type Issue struct {
	// Kind is "category", "resource" or "integrity".
	Kind string
	// ID of the offending record, empty for integrity issues.
	ID  string
	Err error
}

// Report summarizes a validation run over a Dataset.
type Report struct {
	CategoryCount int
	ResourceCount int
	Issues        []Issue
}

// Valid reports whether no issues were found.
func (r *Report) Valid() bool {
	return len(r.Issues) == 0
}

// Validate checks every record and the relationships between them.
func (d *Dataset) Validate() *Report {
	report := &Report{
		CategoryCount: len(d.categories),
		ResourceCount: len(d.resources),
	}

	for i := range d.categories {
		if err := core.ValidateCategory(&d.categories[i]); err != nil {
			report.Issues = append(report.Issues, Issue{Kind: "category", ID: d.categories[i].ID, Err: err})
		}
	}
	for i := range d.resources {
		if err := core.ValidateResource(&d.resources[i]); err != nil {
			report.Issues = append(report.Issues, Issue{Kind: "resource", ID: d.resources[i].ID, Err: err})
		}
	}
	for _, err := range core.ValidateIntegrity(d.categories, d.resources) {
		report.Issues = append(report.Issues, Issue{Kind: "integrity", Err: err})
	}

	d.logger.Debug("dataset validated",
		"categories", report.CategoryCount,
		"resources", report.ResourceCount,
		"issues", len(report.Issues))
	return report
}
