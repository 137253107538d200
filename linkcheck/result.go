package linkcheck

// Status is the outcome of checking one URL.
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
	StatusError   Status = "error"
)

// Result is the outcome of checking one URL.
type Result struct {
	URL        string `json:"url"`
	Status     Status `json:"status"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error,omitempty"`
	Attempts   int    `json:"attempts,omitempty"`
}

// Report summarizes a run. Results are in the order the URLs were given.
type Report struct {
	Total   int      `json:"total"`
	Valid   int      `json:"valid"`
	Invalid int      `json:"invalid"`
	Errors  int      `json:"errors"`
	Results []Result `json:"results"`
}

// OK reports whether every URL was valid.
func (r *Report) OK() bool {
	return r.Invalid == 0 && r.Errors == 0
}

// Failures returns the results that were not valid.
func (r *Report) Failures() []Result {
	var failures []Result
	for _, result := range r.Results {
		if result.Status != StatusValid {
			failures = append(failures, result)
		}
	}
	return failures
}

func newReport(results []Result) *Report {
	report := &Report{Total: len(results), Results: results}
	for _, result := range results {
		switch result.Status {
		case StatusValid:
			report.Valid++
		case StatusInvalid:
			report.Invalid++
		default:
			report.Errors++
		}
	}
	return report
}
