package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fwojciec/roster"
	"github.com/fwojciec/roster/fs"
	"github.com/fwojciec/roster/goquery"
	"github.com/fwojciec/roster/scrape"
	rslog "github.com/fwojciec/roster/slog"
	"golang.org/x/sync/errgroup"
)

// Run executes the watch command. It monitors the page until interrupted
// or until --duration elapses, then records the session and optionally
// exports the collected people.
func (c *WatchCmd) Run(deps *Dependencies) error {
	stopCtx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if c.Duration > 0 {
		var cancel context.CancelFunc
		stopCtx, cancel = context.WithTimeout(stopCtx, c.Duration)
		defer cancel()
	}

	page, err := deps.Browser.Open(stopCtx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", roster.ErrorMessage(err))
		return err
	}

	loop := scrape.NewLoop(0)
	session := scrape.NewSession(scrape.Dependencies{
		Document:   page.Document,
		Extractor:  rslog.NewLoggingExtractor(goquery.NewExtractor(deps.Registry), deps.Logger),
		Changes:    page.Changes,
		Clicker:    page.Clicker,
		Storage:    deps.Storage,
		Notifier:   rslog.NewLoggingNotifier(nil, deps.Logger),
		Scheduler:  scrape.NewClock(loop),
		Dispatcher: loop,
		Logger:     deps.Logger,
	},
		scrape.WithDebounceDelay(deps.Config.DebounceDelay),
		scrape.WithPaginationInterval(deps.Config.PaginationInterval),
	)

	record := &roster.SessionRecord{URL: c.URL}
	if err := deps.Sessions.CreateSession(deps.Ctx, record); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", roster.ErrorMessage(err))
		return err
	}

	unsubscribe := deps.Storage.Subscribe(func(change roster.StorageChange) {
		if change.Key != roster.DataKey || change.Removed {
			return
		}
		people, err := roster.DecodePeople(change.NewValue)
		if err != nil {
			return
		}
		fmt.Fprintf(deps.Stdout, "Collected %d people\n", len(people))
	})
	defer unsubscribe()

	fmt.Fprintf(deps.Stdout, "Watching %s. Press Ctrl+C to stop.\n", c.URL)

	loopCtx, stopLoop := context.WithCancel(deps.Ctx)
	defer stopLoop()

	g, gctx := errgroup.WithContext(loopCtx)
	g.Go(func() error {
		if err := loop.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer stopLoop()
		return monitor(stopCtx, gctx, loop, session, deps.Config.StartDelay)
	})
	err = g.Wait()
	session.Flush()

	count := session.Count()
	if ferr := deps.Sessions.FinishSession(context.WithoutCancel(deps.Ctx), record.ID, count); ferr != nil {
		deps.Logger.Warn("finish session", "id", record.ID, "err", ferr)
	}

	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	if c.SaveHTML != "" {
		saveSnapshot(deps, page.Document, c.SaveHTML)
	}

	people := session.Data()
	fmt.Fprintf(deps.Stdout, "Stopped. %d people collected.\n", count)
	if preview := roster.FormatPreview(people, deps.Config.PreviewLimit); preview != "" {
		fmt.Fprintln(deps.Stdout, preview)
	}

	if c.Export != "" && len(people) > 0 {
		file := roster.Export(people, exportSettings(deps.Config, c.Company, c.EmailFormat), deps.Now())
		path, err := fs.NewExportWriter(c.Export).Write(file)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Exported %d people to %s\n", file.Rows, path)
	}

	return nil
}

// monitor waits startDelay, starts monitoring on the loop, and stops it
// once stopCtx is done.
func monitor(stopCtx, loopCtx context.Context, loop *scrape.Loop, session *scrape.Session, startDelay time.Duration) error {
	select {
	case <-time.After(startDelay):
	case <-stopCtx.Done():
		return nil
	}

	if err := handle(loopCtx, loop, session, scrape.ActionStartMonitoring); err != nil {
		return fmt.Errorf("start monitoring: %w", err)
	}

	<-stopCtx.Done()

	if err := handle(loopCtx, loop, session, scrape.ActionStopMonitoring); err != nil {
		return fmt.Errorf("stop monitoring: %w", err)
	}
	return nil
}

// handle runs one protocol action on the loop.
func handle(ctx context.Context, loop *scrape.Loop, session *scrape.Session, action string) error {
	var resp scrape.Response
	if err := loop.Do(ctx, func() {
		resp = session.Handle(ctx, scrape.Request{Action: action})
	}); err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(resp.Error)
	}
	return nil
}

// saveSnapshot writes the current page markup into dir for later offline
// scraping. Failures are reported but do not fail the command.
func saveSnapshot(deps *Dependencies, doc roster.Document, dir string) {
	snap, err := doc.Snapshot(context.WithoutCancel(deps.Ctx))
	if err != nil {
		deps.Logger.Warn("snapshot for save failed", "err", err)
		return
	}
	path, err := fs.NewSnapshotWriter(dir).Save(snap)
	if err != nil {
		deps.Logger.Warn("save snapshot failed", "dir", dir, "err", err)
		return
	}
	fmt.Fprintf(deps.Stdout, "Saved page to %s\n", path)
}
