package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/roster"
)

// Ensure LoggingDocument implements roster.Document.
var _ roster.Document = (*LoggingDocument)(nil)

// LoggingDocument wraps a Document with debug logging.
type LoggingDocument struct {
	next   roster.Document
	logger *slog.Logger
}

// NewLoggingDocument creates a new LoggingDocument.
func NewLoggingDocument(next roster.Document, logger *slog.Logger) *LoggingDocument {
	return &LoggingDocument{next: next, logger: logger}
}

// Snapshot logs the snapshot size and delegates to the wrapped document.
func (d *LoggingDocument) Snapshot(ctx context.Context) (snap *roster.Snapshot, err error) {
	defer func(begin time.Time) {
		bytes := 0
		if snap != nil {
			bytes = len(snap.HTML)
		}
		d.logger.Debug("snapshot",
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Snapshot(ctx)
}
