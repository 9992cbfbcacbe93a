package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/roster"
)

// Ensure LoggingClicker implements roster.LoadMoreClicker.
var _ roster.LoadMoreClicker = (*LoggingClicker)(nil)

// LoggingClicker wraps a LoadMoreClicker and logs clicks and failures.
// Misses are not logged.
type LoggingClicker struct {
	next   roster.LoadMoreClicker
	logger *slog.Logger
}

// NewLoggingClicker creates a new LoggingClicker.
func NewLoggingClicker(next roster.LoadMoreClicker, logger *slog.Logger) *LoggingClicker {
	return &LoggingClicker{next: next, logger: logger}
}

// ClickLoadMore delegates to the wrapped clicker.
func (c *LoggingClicker) ClickLoadMore(ctx context.Context) (clicked bool, err error) {
	defer func(begin time.Time) {
		if !clicked && err == nil {
			return
		}
		c.logger.Debug("load more",
			"clicked", clicked,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.ClickLoadMore(ctx)
}
