package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/poiesic/aegis/bookmarks"
	"github.com/poiesic/aegis/core"
	"github.com/poiesic/aegis/search"
	"github.com/urfave/cli/v2"
)

func bookmarksCommand() *cli.Command {
	return &cli.Command{
		Name:  "bookmarks",
		Usage: "Manage bookmarked resources",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List bookmarks, newest first",
				Action: bookmarksListAction,
			},
			{
				Name:      "add",
				Usage:     "Bookmark resources",
				ArgsUsage: "<resource-id>...",
				Action:    bookmarksAddAction,
			},
			{
				Name:      "remove",
				Usage:     "Remove bookmarks",
				ArgsUsage: "<resource-id>...",
				Action:    bookmarksRemoveAction,
			},
			{
				Name:  "export",
				Usage: "Export bookmarks as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file, - for stdout (default aegis-bookmarks-<date>.json)",
					},
					&cli.BoolFlag{
						Name:  "include-resources",
						Usage: "Include the full records of bookmarked resources",
					},
				},
				Action: bookmarksExportAction,
			},
			{
				Name:      "import",
				Usage:     "Merge bookmarks from an export file",
				ArgsUsage: "<file>",
				Action:    bookmarksImportAction,
			},
			{
				Name:   "clear",
				Usage:  "Remove every bookmark",
				Action: bookmarksClearAction,
			},
		},
	}
}

func bookmarksListAction(c *cli.Context) error {
	catalog, _, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	list, err := catalog.Bookmarks().List(context.Background())
	if err != nil {
		return err
	}

	w := c.App.Writer
	heading(w, "Bookmarks", len(list))
	for _, b := range list {
		name := faintStyle.Render("(not in catalog)")
		if resource, ok := catalog.Dataset().ResourceByID(b.ResourceID); ok {
			name = resource.Name
		}
		fmt.Fprintf(w, "  %s %s %s\n", b.ResourceID, name, faintStyle.Render(formatTime(b.Timestamp)))
	}
	return nil
}

func bookmarksAddAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one resource id is required")
	}
	catalog, _, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	ctx := context.Background()
	for _, id := range c.Args().Slice() {
		if _, ok := catalog.Dataset().ResourceByID(id); !ok {
			return fmt.Errorf("resource %q not found", id)
		}
		added, err := catalog.Bookmarks().Add(ctx, id)
		if err != nil {
			return err
		}
		if added {
			fmt.Fprintf(c.App.Writer, "bookmarked %s\n", id)
		} else {
			fmt.Fprintf(c.App.Writer, "%s is already bookmarked\n", id)
		}
	}
	return nil
}

func bookmarksRemoveAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one resource id is required")
	}
	catalog, _, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	ctx := context.Background()
	for _, id := range c.Args().Slice() {
		if err := catalog.Bookmarks().Remove(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "removed %s\n", id)
	}
	return nil
}

func bookmarksExportAction(c *cli.Context) error {
	catalog, _, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	var resources []core.Resource
	if c.Bool("include-resources") {
		resources = catalog.Dataset().Resources()
	}
	export, err := bookmarks.NewExport(context.Background(), catalog.Bookmarks(), resources)
	if err != nil {
		return err
	}

	output := c.String("output")
	if output == "" {
		output = bookmarks.FileName(time.Now())
	}
	if output == "-" {
		return writeJSON(c.App.Writer, export)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "exported %d bookmarks to %s\n", export.BookmarkCount, output)
	return nil
}

func bookmarksImportAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one file is required")
	}

	var (
		data []byte
		err  error
	)
	if path := c.Args().First(); path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("reading import: %w", err)
	}

	catalog, _, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	result, err := bookmarks.Import(context.Background(), catalog.Bookmarks(), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "imported %d bookmarks, skipped %d already present\n", result.ImportedCount, result.SkippedCount)
	return nil
}

func bookmarksClearAction(c *cli.Context) error {
	catalog, _, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	if err := catalog.Bookmarks().Clear(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "cleared bookmarks")
	return nil
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Manage search history",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List recent searches, newest first",
				Action: historyListAction,
			},
			{
				Name:   "clear",
				Usage:  "Remove all search history",
				Action: historyClearAction,
			},
		},
	}
}

func historyListAction(c *cli.Context) error {
	catalog, _, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	entries, err := catalog.History().List(context.Background())
	if err != nil {
		return err
	}

	w := c.App.Writer
	heading(w, "History", len(entries))
	for _, entry := range entries {
		fmt.Fprintf(w, "  %s %s\n", entry.Query, faintStyle.Render(formatTime(entry.Timestamp)))
	}
	return nil
}

func historyClearAction(c *cli.Context) error {
	catalog, _, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	if err := catalog.History().Clear(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "cleared search history")
	return nil
}

func presetsCommand() *cli.Command {
	return &cli.Command{
		Name:  "presets",
		Usage: "Manage saved filter presets",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List presets",
				Action: presetsListAction,
			},
			{
				Name:      "save",
				Usage:     "Save a filter selection under a name",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "categories", Usage: "Comma-separated category ids"},
					&cli.StringFlag{Name: "regions", Usage: "Comma-separated regions"},
					&cli.StringFlag{Name: "risk-levels", Usage: "Comma-separated risk levels"},
					&cli.StringFlag{Name: "costs", Usage: "Comma-separated cost tiers"},
					&cli.BoolFlag{Name: "unique", Usage: "Save under a new name instead of replacing a preset with the same name"},
				},
				Action: presetsSaveAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete a preset",
				ArgsUsage: "<id>",
				Action:    presetsDeleteAction,
			},
		},
	}
}

func presetsListAction(c *cli.Context) error {
	catalog, _, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	presets, err := catalog.Presets().List(context.Background())
	if err != nil {
		return err
	}

	w := c.App.Writer
	heading(w, "Presets", len(presets))
	for _, preset := range presets {
		fmt.Fprintf(w, "  %s %s\n", preset.Name, faintStyle.Render("("+preset.ID+")"))
		facets := search.FacetsFromPreset(preset.Filters)
		for _, line := range []struct {
			label  string
			values []string
		}{
			{"categories", facets.Categories},
			{"regions", facets.Regions},
			{"risk levels", facets.RiskLevels},
			{"costs", facets.Costs},
		} {
			if len(line.values) > 0 {
				fmt.Fprintf(w, "    %s: %s\n", line.label, strings.Join(line.values, ", "))
			}
		}
	}
	return nil
}

func presetsSaveAction(c *cli.Context) error {
	name := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	catalog, _, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	ctx := context.Background()
	if c.Bool("unique") {
		if name, err = catalog.Presets().UniqueName(ctx, name); err != nil {
			return err
		}
	}

	facets := search.Facets{
		Categories: search.ParseFilterParam(c.String("categories")),
		Regions:    search.ParseFilterParam(c.String("regions")),
		RiskLevels: search.ParseFilterParam(c.String("risk-levels")),
		Costs:      search.ParseFilterParam(c.String("costs")),
	}
	preset, err := catalog.Presets().Save(ctx, name, facets.Preset())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "saved preset %q (%s)\n", preset.Name, preset.ID)
	return nil
}

func presetsDeleteAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one preset id is required")
	}
	catalog, _, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	existed, err := catalog.Presets().Delete(context.Background(), c.Args().First())
	if err != nil {
		return err
	}
	if !existed {
		return fmt.Errorf("preset %q not found", c.Args().First())
	}
	fmt.Fprintf(c.App.Writer, "deleted preset %s\n", c.Args().First())
	return nil
}
