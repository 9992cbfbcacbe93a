package scrape

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/roster"
)

// Driver periodically clicks the document's load-more control so the page
// keeps loading cards. A tick with no control is a no-op.
//
// Driver is not safe for concurrent use.
type Driver struct {
	clicker   roster.LoadMoreClicker
	scheduler roster.Scheduler
	interval  time.Duration
	logger    *slog.Logger

	ticker roster.Timer
	clicks int
}

// NewDriver creates a stopped Driver.
func NewDriver(clicker roster.LoadMoreClicker, scheduler roster.Scheduler, interval time.Duration, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Driver{
		clicker:   clicker,
		scheduler: scheduler,
		interval:  interval,
		logger:    logger,
	}
}

// Start begins clicking every interval. It does nothing if already running
// or when there is no clicker.
func (d *Driver) Start(ctx context.Context) {
	if d.ticker != nil || d.clicker == nil {
		return
	}
	d.ticker = d.scheduler.Every(d.interval, func() { d.tick(ctx) })
}

// Stop cancels the recurring click. Safe to call more than once.
func (d *Driver) Stop() {
	if d.ticker == nil {
		return
	}
	d.ticker.Stop()
	d.ticker = nil
}

// Running reports whether the driver is scheduled.
func (d *Driver) Running() bool {
	return d.ticker != nil
}

// Clicks returns the number of successful clicks since creation.
func (d *Driver) Clicks() int {
	return d.clicks
}

func (d *Driver) tick(ctx context.Context) {
	if d.ticker == nil {
		return
	}
	clicked, err := d.clicker.ClickLoadMore(ctx)
	if err != nil {
		d.logger.Warn("load more failed", "err", err)
		return
	}
	if clicked {
		d.clicks++
		d.logger.Debug("clicked load more", "clicks", d.clicks)
	}
}
