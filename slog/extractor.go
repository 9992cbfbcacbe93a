// Package slog provides logging decorators for roster services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/roster"
)

// Ensure LoggingExtractor implements roster.Extractor.
var _ roster.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs each pass.
type LoggingExtractor struct {
	next   roster.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next roster.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what it found.
func (e *LoggingExtractor) Extract(snap *roster.Snapshot) (result *roster.ExtractResult, err error) {
	defer func(begin time.Time) {
		var url string
		if snap != nil {
			url = snap.URL
		}
		var cards, people, errs int
		var selector string
		if result != nil {
			cards, people, errs, selector = result.Cards, len(result.People), len(result.Errors), result.Selector
		}
		e.logger.Debug("extract",
			"url", url,
			"selector", selector,
			"cards", cards,
			"people", people,
			"errors", errs,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(snap)
}
