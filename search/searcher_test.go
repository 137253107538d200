package search

import (
	"strings"
	"sync"
	"testing"

	"github.com/poiesic/aegis/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	categories []core.Category
	resources  []core.Resource
}

func (s staticSource) Categories() []core.Category { return s.categories }
func (s staticSource) Resources() []core.Resource  { return s.resources }

type recordingMonitor struct {
	noopMonitor
	stages []string
}

func (m *recordingMonitor) Start(_ Request)                       { m.stages = append(m.stages, "start") }
func (m *recordingMonitor) AfterParse(_ Query)                    { m.stages = append(m.stages, "parse") }
func (m *recordingMonitor) AfterCategorySearch(_ []core.Category) { m.stages = append(m.stages, "categories") }
func (m *recordingMonitor) AfterResourceSearch(_ []core.Resource) { m.stages = append(m.stages, "resources") }
func (m *recordingMonitor) AfterFilter(_ []core.Resource)         { m.stages = append(m.stages, "filter") }
func (m *recordingMonitor) Finish(_ *Response)                    { m.stages = append(m.stages, "finish") }

func newTestSearcher(t *testing.T) *Searcher {
	t.Helper()
	s, err := NewSearcher(staticSource{categories: testCategories(), resources: testResources()})
	require.NoError(t, err)
	return s
}

func TestNewSearcher(t *testing.T) {
	_, err := NewSearcher(nil)
	assert.ErrorIs(t, err, ErrDatasetRequired)

	s, err := NewSearcher(staticSource{}, WithLogger(nil))
	require.NoError(t, err)
	assert.NotNil(t, s.logger)
}

func TestSearcher_Run(t *testing.T) {
	s := newTestSearcher(t)

	t.Run("all scope", func(t *testing.T) {
		resp := s.Run(Request{Query: "court"})
		assert.Equal(t, []string{"court-records"}, categoryIDs(resp.Categories))
		assert.Equal(t, []string{"pacer", "courtlistener"}, ids(resp.Resources))
		assert.Equal(t, 3, resp.Total())
	})

	t.Run("resources scope", func(t *testing.T) {
		resp := s.Run(Request{Query: "court", Scope: ScopeResources})
		assert.Empty(t, resp.Categories)
		assert.NotNil(t, resp.Categories)
		assert.Len(t, resp.Resources, 2)
	})

	t.Run("categories scope", func(t *testing.T) {
		resp := s.Run(Request{Query: "court", Scope: ScopeCategories})
		assert.Len(t, resp.Categories, 1)
		assert.Empty(t, resp.Resources)
	})

	t.Run("facets take precedence over criteria", func(t *testing.T) {
		resp := s.Run(Request{
			Facets:   Facets{Costs: []string{"free"}},
			Criteria: Criteria{Cost: "paid"},
		})
		assert.Equal(t, []string{"courtlistener", "sherlock"}, ids(resp.Resources))
	})

	t.Run("criteria apply without facets", func(t *testing.T) {
		resp := s.Run(Request{Criteria: Criteria{Cost: "paid"}})
		assert.Equal(t, []string{"pacer"}, ids(resp.Resources))
	})

	t.Run("sorted", func(t *testing.T) {
		resp := s.Run(Request{Scope: ScopeResources, Sort: &SortConfig{Field: SortByName, Order: Ascending}})
		assert.Equal(t, []string{"courtlistener", "pacer", "sherlock", "whitepages"}, ids(resp.Resources))
	})

	t.Run("oversized query matches nothing", func(t *testing.T) {
		resp := s.Run(Request{Query: strings.Repeat("x", 2000)})
		assert.True(t, resp.Query.ExceedsLimit)
		assert.Zero(t, resp.Total())
	})
}

func TestSearcher_RunWithMonitor(t *testing.T) {
	s := newTestSearcher(t)
	monitor := &recordingMonitor{}

	s.RunWithMonitor(Request{Query: "court"}, monitor)
	assert.Equal(t, []string{"start", "parse", "categories", "resources", "filter", "finish"}, monitor.stages)

	monitor.stages = nil
	s.RunWithMonitor(Request{Scope: ScopeCategories}, monitor)
	assert.Equal(t, []string{"start", "parse", "categories", "finish"}, monitor.stages)
}

func TestParseScope(t *testing.T) {
	scope, err := ParseScope("")
	require.NoError(t, err)
	assert.Equal(t, ScopeAll, scope)

	scope, err = ParseScope("categories")
	require.NoError(t, err)
	assert.Equal(t, ScopeCategories, scope)

	_, err = ParseScope("everything")
	assert.ErrorIs(t, err, ErrUnknownScope)
}

func categoryIDs(categories []core.Category) []string {
	result := make([]string, len(categories))
	for i, c := range categories {
		result[i] = c.ID
	}
	return result
}

func TestSearcher_ConcurrentUse(t *testing.T) {
	s := newTestSearcher(t)
	want := s.Run(Request{Query: "court", Sort: &SortConfig{Field: SortByName, Order: Descending}})

	var wg sync.WaitGroup
	results := make([]*Response, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.Run(Request{Query: "court", Sort: &SortConfig{Field: SortByName, Order: Descending}})
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
