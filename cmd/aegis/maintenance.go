package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/poiesic/aegis/dataset"
	"github.com/poiesic/aegis/linkcheck"
	"github.com/urfave/cli/v2"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:   "validate",
		Usage:  "Validate the catalog data files",
		Action: validateAction,
	}
}

func validateAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(cfg.DataDir, dataset.WithStrict())
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s %v", failStyle.Render("✗"), err), 1)
	}

	report := ds.Validate()
	w := c.App.Writer
	fmt.Fprintf(w, "Categories: %d\nResources:  %d\n", report.CategoryCount, report.ResourceCount)
	if report.Valid() {
		fmt.Fprintln(w, okStyle.Render("✓ catalog is valid"))
		return nil
	}

	heading(w, "Issues", len(report.Issues))
	for _, issue := range report.Issues {
		fmt.Fprintf(w, "  %s %s\n", failStyle.Render(issue.Kind), issue.Err)
	}
	return cli.Exit(fmt.Sprintf("%d validation issues", len(report.Issues)), 1)
}

func checkLinksCommand() *cli.Command {
	return &cli.Command{
		Name:   "check-links",
		Usage:  "Check that every resource URL is reachable",
		Action: checkLinksAction,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of URLs checked at once (overrides config)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-request timeout (overrides config)",
			},
			&cli.IntFlag{
				Name:  "max-retries",
				Usage: "Retries for failed requests (overrides config)",
			},
			&cli.DurationFlag{
				Name:  "retry-delay",
				Usage: "Base delay for exponential backoff (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Do not print progress",
			},
		},
	}
}

func checkLinksAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	var loadOpts []dataset.Option
	if cfg.Strict {
		loadOpts = append(loadOpts, dataset.WithStrict())
	}
	ds, err := dataset.Load(cfg.DataDir, loadOpts...)
	if err != nil {
		return err
	}

	opts := cfg.LinkCheck.Options()
	if c.IsSet("workers") {
		opts = append(opts, linkcheck.WithPoolSize(c.Int("workers")))
	}
	if c.IsSet("timeout") {
		opts = append(opts, linkcheck.WithTimeout(c.Duration("timeout")))
	}
	if c.IsSet("max-retries") {
		opts = append(opts, linkcheck.WithMaxRetries(c.Int("max-retries")))
	}
	if c.IsSet("retry-delay") {
		opts = append(opts, linkcheck.WithRetryDelay(c.Duration("retry-delay")))
	}
	if !c.Bool("quiet") {
		var mu sync.Mutex
		opts = append(opts, linkcheck.WithProgress(func(done, total int, result linkcheck.Result) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(c.App.ErrWriter, "\rChecked %d/%d", done, total)
			if done == total {
				fmt.Fprintln(c.App.ErrWriter)
			}
		}))
	}

	checker, err := linkcheck.NewChecker(opts...)
	if err != nil {
		return err
	}
	defer checker.Release()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	report, err := checker.CheckResources(ctx, ds.Resources())
	if err != nil {
		return fmt.Errorf("link check interrupted: %w", err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Total URLs: %d\nValid:      %d\nInvalid:    %d\nErrors:     %d\n",
		report.Total, report.Valid, report.Invalid, report.Errors)
	fmt.Fprintln(w, faintStyle.Render(fmt.Sprintf("finished in %s", time.Since(start).Round(time.Millisecond))))

	if report.OK() {
		fmt.Fprintln(w, okStyle.Render("✓ all links are reachable"))
		return nil
	}

	failures := report.Failures()
	heading(w, "Failures", len(failures))
	for _, result := range failures {
		fmt.Fprintf(w, "  %s %s\n", failStyle.Render(string(result.Status)), result.URL)
		fmt.Fprintf(w, "    %s\n", result.Error)
	}
	return cli.Exit(fmt.Sprintf("%d links failed", len(failures)), 1)
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Serve the JSON API",
		Action: serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "Address to listen on (overrides config)",
			},
		},
	}
}

func serveAction(c *cli.Context) error {
	catalog, cfg, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	addr := cfg.Listen
	if c.IsSet("listen") {
		addr = c.String("listen")
	}

	srv, err := catalog.NewServer()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, addr)
}
