package main

import (
	"context"
	"strings"

	"github.com/poiesic/aegis/search"
	"github.com/urfave/cli/v2"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search categories and resources",
		ArgsUsage: "[query]",
		Action:    searchAction,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Usage: "Record kinds to search (all, resources, categories)", Value: "all"},
			&cli.StringFlag{Name: "categories", Usage: "Comma-separated category ids"},
			&cli.StringFlag{Name: "regions", Usage: "Comma-separated regions"},
			&cli.StringFlag{Name: "risk-levels", Usage: "Comma-separated risk levels"},
			&cli.StringFlag{Name: "costs", Usage: "Comma-separated cost tiers"},
			&cli.StringFlag{Name: "region", Usage: "Single region, used when no multi-value filter is set"},
			&cli.StringFlag{Name: "risk-level", Usage: "Single risk level, used when no multi-value filter is set"},
			&cli.StringFlag{Name: "cost", Usage: "Single cost tier, used when no multi-value filter is set"},
			&cli.StringFlag{Name: "preset", Usage: "Apply the filters of a saved preset by id"},
			&cli.StringFlag{Name: "sort", Usage: "Sort resources by name, category, risk or date"},
			&cli.StringFlag{Name: "order", Usage: "Sort order (asc, desc)"},
			&cli.BoolFlag{Name: "json", Usage: "Print results as JSON"},
			&cli.BoolFlag{Name: "no-history", Usage: "Do not record the query in search history"},
		},
	}
}

func searchAction(c *cli.Context) error {
	ctx := context.Background()

	scope, err := search.ParseScope(c.String("type"))
	if err != nil {
		return err
	}
	sortConfig, err := search.ParseSortConfig(c.String("sort"), c.String("order"))
	if err != nil {
		return err
	}

	catalog, _, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	facets := search.Facets{
		Categories: search.ParseFilterParam(c.String("categories")),
		Regions:    search.ParseFilterParam(c.String("regions")),
		RiskLevels: search.ParseFilterParam(c.String("risk-levels")),
		Costs:      search.ParseFilterParam(c.String("costs")),
	}
	if id := c.String("preset"); id != "" {
		preset, err := catalog.Presets().Load(ctx, id)
		if err != nil {
			return err
		}
		facets = search.FacetsFromPreset(preset.Filters)
	}

	searcher, err := catalog.NewSearcher()
	if err != nil {
		return err
	}

	query := strings.Join(c.Args().Slice(), " ")
	response := searcher.Run(search.Request{
		Query:  query,
		Scope:  scope,
		Facets: facets,
		Criteria: search.Criteria{
			Region:    c.String("region"),
			RiskLevel: c.String("risk-level"),
			Cost:      c.String("cost"),
		},
		Sort: sortConfig,
	})

	if !c.Bool("no-history") {
		if _, err := catalog.History().Add(ctx, query); err != nil {
			return err
		}
	}

	w := c.App.Writer
	if c.Bool("json") {
		return writeJSON(w, response)
	}
	if response.Query.ExceedsLimit {
		return cli.Exit("query is too long", 1)
	}
	if scope != search.ScopeResources {
		printCategories(w, response.Categories)
	}
	if scope != search.ScopeCategories {
		printResources(w, response.Resources)
	}
	return nil
}
