package roster

import (
	"context"
	"strconv"
	"time"
)

// DataKey is the storage key holding the current session's people list.
const DataKey = "scrapedData"

// StorageChange describes a key written or removed in a KeyValueStore.
type StorageChange struct {
	Key      string
	NewValue []byte
	Removed  bool
}

// KeyValueStore persists values across processes.
type KeyValueStore interface {
	// Get returns the value for key.
	// Returns ENOTFOUND if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set creates or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Subscribe registers fn to be called after every Set and Remove.
	Subscribe(fn func(StorageChange)) (unsubscribe func())
}

// CountNotifier receives the current record count after each store insertion
// batch. Notifications are fire-and-forget.
type CountNotifier interface {
	NotifyCount(count int)
}

// BadgeText returns the badge label for a record count. Zero clears the badge.
func BadgeText(count int) string {
	if count <= 0 {
		return ""
	}
	return strconv.Itoa(count)
}

// SessionRecord is the persisted summary of one monitoring session.
type SessionRecord struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Count     int       `json:"count"`
	StartedAt time.Time `json:"startedAt"`
	StoppedAt time.Time `json:"stoppedAt"`
}

// Validate returns an error if the session record contains invalid fields.
func (r *SessionRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "session URL required")
	}
	if r.Count < 0 {
		return Errorf(EINVALID, "session count must not be negative")
	}
	return nil
}

// SessionService represents a service for recording monitoring sessions.
type SessionService interface {
	// CreateSession records a started session and assigns its ID.
	CreateSession(ctx context.Context, record *SessionRecord) error

	// FinishSession stores the final count and stop time.
	// Returns ENOTFOUND if the session does not exist.
	FinishSession(ctx context.Context, id string, count int) error

	// FindSessions returns sessions, most recent first.
	FindSessions(ctx context.Context, filter SessionFilter) ([]*SessionRecord, error)
}

// SessionFilter represents a filter for FindSessions.
type SessionFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
