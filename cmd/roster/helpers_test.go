package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/roster"
	main "github.com/fwojciec/roster/cmd/roster"
	"github.com/fwojciec/roster/config"
	"github.com/fwojciec/roster/goquery"
	"github.com/fwojciec/roster/mock"
	"github.com/stretchr/testify/require"
)

const peoplePage = `<!DOCTYPE html>
<html>
<body>
<main>
<ul class="scaffold-finite-scroll__content">
	<li class="org-people-profile-card">
		<div class="artdeco-entity-lockup__title"><a href="/in/ada-lovelace">Ada Lovelace</a></div>
		<div class="artdeco-entity-lockup__subtitle">Engineer</div>
	</li>
	<li class="org-people-profile-card">
		<div class="artdeco-entity-lockup__title"><a href="/in/alan-turing">Alan Turing</a></div>
	</li>
</ul>
<button>Show more results</button>
</main>
</body>
</html>`

var fixedNow = time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

// newDeps returns dependencies with discarded logs and default config.
func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:      context.Background(),
		Stdout:   stdout,
		Stderr:   stderr,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:   config.NewConfig(),
		Registry: goquery.NewRegistry(goquery.DefaultStrategy()),
		Now:      func() time.Time { return fixedNow },
	}, stdout, stderr
}

// memoryStore is an in-memory key-value store built on mock.KeyValueStore.
type memoryStore struct {
	mu        sync.Mutex
	values    map[string][]byte
	listeners []func(roster.StorageChange)
}

func (m *memoryStore) store() *mock.KeyValueStore {
	m.values = make(map[string][]byte)
	return &mock.KeyValueStore{
		GetFn: func(_ context.Context, key string) ([]byte, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			v, ok := m.values[key]
			if !ok {
				return nil, roster.Errorf(roster.ENOTFOUND, "key %q not found", key)
			}
			return v, nil
		},
		SetFn: func(_ context.Context, key string, value []byte) error {
			m.mu.Lock()
			m.values[key] = value
			listeners := append([]func(roster.StorageChange){}, m.listeners...)
			m.mu.Unlock()
			for _, fn := range listeners {
				fn(roster.StorageChange{Key: key, NewValue: value})
			}
			return nil
		},
		RemoveFn: func(_ context.Context, key string) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.values, key)
			return nil
		},
		SubscribeFn: func(fn func(roster.StorageChange)) func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.listeners = append(m.listeners, fn)
			return func() {}
		},
	}
}

// storeWith returns a store holding people under the data key.
func storeWith(t *testing.T, people ...roster.Person) *mock.KeyValueStore {
	t.Helper()

	m := &memoryStore{}
	s := m.store()
	if len(people) > 0 {
		data, err := roster.EncodePeople(people)
		require.NoError(t, err)
		require.NoError(t, s.Set(context.Background(), roster.DataKey, data))
	}
	return s
}
