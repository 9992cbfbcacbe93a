package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/roster"
)

// Ensure LoggingKeyValueStore implements roster.KeyValueStore.
var _ roster.KeyValueStore = (*LoggingKeyValueStore)(nil)

// LoggingKeyValueStore wraps a KeyValueStore with logging of writes.
type LoggingKeyValueStore struct {
	next   roster.KeyValueStore
	logger *slog.Logger
}

// NewLoggingKeyValueStore creates a new LoggingKeyValueStore.
func NewLoggingKeyValueStore(next roster.KeyValueStore, logger *slog.Logger) *LoggingKeyValueStore {
	return &LoggingKeyValueStore{next: next, logger: logger}
}

// Get delegates to the wrapped store.
func (s *LoggingKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.next.Get(ctx, key)
}

// Set delegates to the wrapped store and logs the write.
func (s *LoggingKeyValueStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("storage set",
			"key", key,
			"bytes", len(value),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Set(ctx, key, value)
}

// Remove delegates to the wrapped store and logs the removal.
func (s *LoggingKeyValueStore) Remove(ctx context.Context, key string) (err error) {
	defer func() {
		s.logger.Info("storage remove", "key", key, "err", err)
	}()
	return s.next.Remove(ctx, key)
}

// Subscribe delegates to the wrapped store.
func (s *LoggingKeyValueStore) Subscribe(fn func(roster.StorageChange)) func() {
	return s.next.Subscribe(fn)
}
