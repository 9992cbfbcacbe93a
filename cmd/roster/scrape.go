package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fwojciec/roster"
	"github.com/fwojciec/roster/fs"
	"github.com/fwojciec/roster/goquery"
	"github.com/fwojciec/roster/scrape"
	rslog "github.com/fwojciec/roster/slog"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	var doc roster.Document
	if isURL(c.Target) {
		page, err := deps.Browser.Open(deps.Ctx, c.Target)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", roster.ErrorMessage(err))
			return err
		}
		doc = page.Document
		if c.SaveHTML != "" {
			saveSnapshot(deps, doc, c.SaveHTML)
		}
	} else {
		data, err := os.ReadFile(c.Target)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		snap := fs.ParseSnapshot(data, c.BaseURL)
		doc = &fileDocument{snap: snap}
		diagnose(deps, snap.HTML)
	}

	session := scrape.NewSession(scrape.Dependencies{
		Document:  doc,
		Extractor: rslog.NewLoggingExtractor(goquery.NewExtractor(deps.Registry), deps.Logger),
		Storage:   deps.Storage,
		Notifier:  rslog.NewLoggingNotifier(nil, deps.Logger),
		Logger:    deps.Logger,
	})

	resp := session.Handle(deps.Ctx, scrape.Request{Action: scrape.ActionStartScraping})
	session.Flush()

	fmt.Fprintf(deps.Stdout, "Found %d people\n", resp.Count)
	if preview := roster.FormatPreview(resp.Data, deps.Config.PreviewLimit); preview != "" {
		fmt.Fprintln(deps.Stdout, preview)
	}

	return nil
}

// diagnose reports which container and load-more control a saved page has.
func diagnose(deps *Dependencies, html string) {
	if container, err := goquery.FindContainer(html, roster.ContainerChain()); err != nil {
		fmt.Fprintf(deps.Stdout, "Container: none (%s)\n", roster.ErrorMessage(err))
	} else {
		fmt.Fprintf(deps.Stdout, "Container: %s\n", container)
	}

	label, found, err := goquery.FindLoadMore(html)
	switch {
	case err != nil:
		deps.Logger.Warn("load more lookup failed", "err", err)
	case found:
		fmt.Fprintf(deps.Stdout, "Load more: %q\n", label)
	default:
		fmt.Fprintln(deps.Stdout, "Load more: none")
	}
}

// fileDocument is a saved page that never changes.
type fileDocument struct {
	snap *roster.Snapshot
}

func (d *fileDocument) Snapshot(_ context.Context) (*roster.Snapshot, error) {
	return &roster.Snapshot{URL: d.snap.URL, HTML: d.snap.HTML}, nil
}
