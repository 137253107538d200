package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/aegis/core"
	"github.com/poiesic/aegis/search"
)

type searchResponse struct {
	Query        string          `json:"query"`
	Type         search.Scope    `json:"type"`
	ExceedsLimit bool            `json:"exceedsLimit,omitempty"`
	Categories   []core.Category `json:"categories"`
	Resources    []core.Resource `json:"resources"`
	Total        int             `json:"total"`
}

func (s *Server) listCategories(c *gin.Context) {
	categories := search.SearchCategories(s.catalog.Categories(), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"categories": categories, "total": len(categories)})
}

func (s *Server) getCategory(c *gin.Context) {
	category, ok := s.catalog.CategoryBySlug(c.Param("slug"))
	if !ok {
		s.fail(c, http.StatusNotFound, fmt.Errorf("category %q not found", c.Param("slug")))
		return
	}
	resources := search.SortResources(s.catalog.ResourcesByCategory(category.ID), sortFromQuery(c))
	c.JSON(http.StatusOK, gin.H{"category": category, "resources": resources})
}

func (s *Server) listResources(c *gin.Context) {
	criteria := search.Criteria{
		Category:  c.Query("category"),
		Cost:      c.Query("cost"),
		Type:      c.Query("type"),
		RiskLevel: c.Query("riskLevel"),
		Region:    c.Query("region"),
	}
	var err error
	if criteria.AuthRequired, err = boolQuery(c, "authRequired"); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if criteria.APIAvailable, err = boolQuery(c, "apiAvailable"); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	response := s.searcher.Run(search.Request{
		Query:    c.Query("q"),
		Scope:    search.ScopeResources,
		Criteria: criteria,
		Sort:     sortFromQuery(c),
	})
	c.JSON(http.StatusOK, gin.H{"resources": response.Resources, "total": len(response.Resources)})
}

func (s *Server) getResource(c *gin.Context) {
	resource, ok := s.catalog.ResourceByID(c.Param("id"))
	if !ok {
		s.fail(c, http.StatusNotFound, fmt.Errorf("resource %q not found", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (s *Server) search(c *gin.Context) {
	scope := search.Scope(c.DefaultQuery("type", string(search.ScopeAll)))

	request := search.Request{
		Query: c.Query("q"),
		Scope: scope,
		Facets: search.Facets{
			Categories: search.ParseFilterParam(c.Query("categories")),
			Regions:    search.ParseFilterParam(c.Query("regions")),
			RiskLevels: search.ParseFilterParam(c.Query("riskLevels")),
			Costs:      search.ParseFilterParam(c.Query("costs")),
		},
		Criteria: search.Criteria{
			Region:    c.Query("region"),
			RiskLevel: c.Query("riskLevel"),
			Cost:      c.Query("cost"),
		},
		Sort: sortFromQuery(c),
	}

	response := s.searcher.Run(request)
	c.JSON(http.StatusOK, searchResponse{
		Query:        request.Query,
		Type:         scope,
		ExceedsLimit: response.Query.ExceedsLimit,
		Categories:   response.Categories,
		Resources:    response.Resources,
		Total:        response.Total(),
	})
}

// sortFromQuery reads sort and order the way the search page does: an
// unknown field disables sorting and only "desc" sorts descending.
func sortFromQuery(c *gin.Context) *search.SortConfig {
	field := search.SortField(c.Query("sort"))
	if !field.Valid() {
		return nil
	}
	order := search.Ascending
	if c.Query("order") == string(search.Descending) {
		order = search.Descending
	}
	return &search.SortConfig{Field: field, Order: order}
}

func boolQuery(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false, got %q", name, raw)
	}
	return &value, nil
}
