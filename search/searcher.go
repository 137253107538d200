package search

import (
	"fmt"
	"log/slog"

	"github.com/poiesic/aegis/core"
)

// Source supplies the records a Searcher works over.
type Source interface {
	Categories() []core.Category
	Resources() []core.Resource
}

// Scope limits which record kinds a request searches.
type Scope string

const (
	ScopeAll        Scope = "all"
	ScopeResources  Scope = "resources"
	ScopeCategories Scope = "categories"
)

// ParseScope validates a scope parameter. Empty means ScopeAll.
func ParseScope(value string) (Scope, error) {
	switch s := Scope(value); s {
	case "":
		return ScopeAll, nil
	case ScopeAll, ScopeResources, ScopeCategories:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScope, value)
}

func (s Scope) includesCategories() bool {
	return s == ScopeAll || s == ScopeCategories || s == ""
}

func (s Scope) includesResources() bool {
	return s == ScopeAll || s == ScopeResources || s == ""
}

// Request describes one search page load.
type Request struct {
	Query string
	Scope Scope
	// Facets take precedence; Criteria apply only when every facet is empty.
	Facets   Facets
	Criteria Criteria
	Sort     *SortConfig
}

// Response holds the results of a Request. Slices for scopes that were not
// searched are empty, never nil.
type Response struct {
	Query      Query           `json:"query"`
	Categories []core.Category `json:"categories"`
	Resources  []core.Resource `json:"resources"`
}

// Total is the number of categories and resources returned.
func (r *Response) Total() int {
	return len(r.Categories) + len(r.Resources)
}

// Searcher runs the search, filter and sort pipeline over a Source.
type Searcher struct {
	source Source
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(source Source, opts ...Option) (*Searcher, error) {
	if source == nil {
		return nil, ErrDatasetRequired
	}

	s := &Searcher{
		source: source,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Run executes a request.
func (s *Searcher) Run(request Request) *Response {
	return s.RunWithMonitor(request, nil)
}

// RunWithMonitor executes a request, reporting each stage to monitor.
//
// Resources are searched, then narrowed by facets when any is selected or by
// the single-value criteria otherwise, then sorted. Categories are only
// searched.
func (s *Searcher) RunWithMonitor(request Request, monitor SearchMonitor) *Response {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(request)

	query := ParseQuery(request.Query)
	monitor.AfterParse(query)
	if query.ExceedsLimit {
		s.logger.Warn("rejecting oversized query", "maxLength", MaxQueryLength)
	}

	response := &Response{
		Query:      query,
		Categories: []core.Category{},
		Resources:  []core.Resource{},
	}

	if request.Scope.includesCategories() {
		response.Categories = Search(s.source.Categories(), request.Query)
		monitor.AfterCategorySearch(response.Categories)
	}

	if request.Scope.includesResources() {
		resources := Search(s.source.Resources(), request.Query)
		monitor.AfterResourceSearch(resources)

		if !request.Facets.IsEmpty() {
			resources = FilterResources(resources, request.Facets)
		} else {
			resources = FilterResourcesBy(resources, request.Criteria)
		}
		monitor.AfterFilter(resources)

		response.Resources = SortResources(resources, request.Sort)
	}

	s.logger.Debug("search complete",
		"query", request.Query,
		"scope", request.Scope,
		"categories", len(response.Categories),
		"resources", len(response.Resources))

	monitor.Finish(response)
	return response
}
