package slog

import (
	"log/slog"

	"github.com/fwojciec/roster"
)

// Ensure LoggingNotifier implements roster.CountNotifier.
var _ roster.CountNotifier = (*LoggingNotifier)(nil)

// LoggingNotifier logs each count notification with its badge text and
// forwards it to next, if set.
type LoggingNotifier struct {
	next   roster.CountNotifier
	logger *slog.Logger
}

// NewLoggingNotifier creates a new LoggingNotifier. next may be nil.
func NewLoggingNotifier(next roster.CountNotifier, logger *slog.Logger) *LoggingNotifier {
	return &LoggingNotifier{next: next, logger: logger}
}

// NotifyCount logs the count and delegates.
func (n *LoggingNotifier) NotifyCount(count int) {
	n.logger.Info("people collected", "count", count, "badge", roster.BadgeText(count))
	if n.next != nil {
		n.next.NotifyCount(count)
	}
}
