package search

import "github.com/poiesic/aegis/core"

// SearchMonitor receives callbacks as a Searcher works through a request.
type SearchMonitor interface {
	Start(request Request)
	AfterParse(query Query)
	AfterCategorySearch(categories []core.Category)
	AfterResourceSearch(resources []core.Resource)
	AfterFilter(resources []core.Resource)
	Finish(response *Response)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Request)                       {}
func (n *noopMonitor) AfterParse(_ Query)                    {}
func (n *noopMonitor) AfterCategorySearch(_ []core.Category) {}
func (n *noopMonitor) AfterResourceSearch(_ []core.Resource) {}
func (n *noopMonitor) AfterFilter(_ []core.Resource)         {}
func (n *noopMonitor) Finish(_ *Response)                    {}
