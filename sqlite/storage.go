package sqlite

import (
	"context"
	"database/sql"
	"sync"

	"github.com/fwojciec/roster"
)

// Compile-time interface verification.
var _ roster.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore implements roster.KeyValueStore using SQLite. Subscribers
// are notified in-process after each successful write.
type KeyValueStore struct {
	db *DB

	mu        sync.Mutex
	nextID    int
	listeners map[int]func(roster.StorageChange)
}

// NewKeyValueStore creates a new KeyValueStore.
func NewKeyValueStore(db *DB) *KeyValueStore {
	return &KeyValueStore{
		db:        db,
		listeners: make(map[int]func(roster.StorageChange)),
	}
}

// Get returns the value stored under key.
func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM storage WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, roster.Errorf(roster.ENOTFOUND, "key %q not found", key)
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set creates or replaces the value stored under key.
func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return roster.Errorf(roster.EINVALID, "key required")
	}
	if value == nil {
		value = []byte{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO storage (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, formatTime(now()))
	if err != nil {
		return err
	}

	s.notify(roster.StorageChange{Key: key, NewValue: value})
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *KeyValueStore) Remove(ctx context.Context, key string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM storage WHERE key = ?", key)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		s.notify(roster.StorageChange{Key: key, Removed: true})
	}
	return nil
}

// Subscribe registers fn for change notifications until unsubscribe is
// called. fn runs on the writing goroutine.
func (s *KeyValueStore) Subscribe(fn func(roster.StorageChange)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *KeyValueStore) notify(change roster.StorageChange) {
	s.mu.Lock()
	fns := make([]func(roster.StorageChange), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}
