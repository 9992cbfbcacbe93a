// Package scrape orchestrates an incremental scraping session: change
// watching, debounced extraction, deduplication, pagination and persistence.
package scrape

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/roster"
)

// Default timings.
const (
	DefaultDebounceDelay      = 500 * time.Millisecond
	DefaultPaginationInterval = 3 * time.Second
)

// Store sizing for the dedup pre-filter.
const (
	expectedPeople = 10000
	falsePositive  = 0.01
)

// Dependencies are the collaborators of a Session.
type Dependencies struct {
	Document   roster.Document
	Extractor  roster.Extractor
	Changes    roster.ChangeObservable
	Clicker    roster.LoadMoreClicker
	Storage    roster.KeyValueStore
	Notifier   roster.CountNotifier
	Scheduler  roster.Scheduler
	Dispatcher roster.Dispatcher
	Logger     *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithDebounceDelay sets the quiet period after a change before a pass runs.
func WithDebounceDelay(d time.Duration) Option {
	return func(s *Session) {
		s.debounceDelay = d
	}
}

// WithPaginationInterval sets how often the load-more control is clicked.
func WithPaginationInterval(d time.Duration) Option {
	return func(s *Session) {
		s.paginationInterval = d
	}
}

// Session is one scraping session over one document. It owns the dedup
// store, the change watcher and the pagination driver.
//
// Session is not safe for concurrent use. In production every call runs on
// a Loop; Flush is the exception and may be called from any goroutine once
// the session is stopped.
type Session struct {
	document  roster.Document
	extractor roster.Extractor
	storage   roster.KeyValueStore
	notifier  roster.CountNotifier
	logger    *slog.Logger

	debounceDelay      time.Duration
	paginationInterval time.Duration

	store   *Store
	watcher *Watcher
	driver  *Driver

	writes    sync.WaitGroup
	lastWrite chan struct{}
}

// NewSession creates a stopped Session with an empty store.
func NewSession(deps Dependencies, opts ...Option) *Session {
	s := &Session{
		document:           deps.Document,
		extractor:          deps.Extractor,
		storage:            deps.Storage,
		notifier:           deps.Notifier,
		logger:             deps.Logger,
		debounceDelay:      DefaultDebounceDelay,
		paginationInterval: DefaultPaginationInterval,
		store:              NewStore(expectedPeople, falsePositive),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.watcher = NewWatcher(deps.Changes, deps.Scheduler, deps.Dispatcher, s.debounceDelay, func(ctx context.Context) {
		s.pass(ctx)
	}, s.logger)
	s.driver = NewDriver(deps.Clicker, deps.Scheduler, s.paginationInterval, s.logger)

	return s
}

// Start clears the store and begins monitoring the document. When the
// session is already monitoring it only clears the store and runs one pass.
//
// Activation scrapes once before looking for the container, so when Start
// fails for a missing container the people found by that pass are kept and
// queued for persistence.
func (s *Session) Start(ctx context.Context) error {
	s.store.Clear()

	if s.watcher.Observing() {
		s.pass(ctx)
		return nil
	}

	if err := s.watcher.Activate(ctx); err != nil {
		return err
	}
	s.driver.Start(ctx)

	s.logger.Info("monitoring started", "people", s.store.Len())
	return nil
}

// Stop stops watching and paginating. Collected people are kept. Safe to
// call more than once.
func (s *Session) Stop() {
	wasActive := s.watcher.Observing() || s.driver.Running()
	s.watcher.Deactivate()
	s.driver.Stop()
	if wasActive {
		s.logger.Info("monitoring stopped", "people", s.store.Len(), "clicks", s.driver.Clicks())
	}
}

// Observing reports whether the session is monitoring the document.
func (s *Session) Observing() bool {
	return s.watcher.Observing()
}

// Scrape runs one extraction pass without starting monitoring and returns
// the number of new people.
func (s *Session) Scrape(ctx context.Context) int {
	return s.pass(ctx)
}

// Data returns the collected people in the order they were found.
func (s *Session) Data() []roster.Person {
	return s.store.Snapshot()
}

// Count returns the number of collected people.
func (s *Session) Count() int {
	return s.store.Len()
}

// Flush waits for pending persistence writes.
func (s *Session) Flush() {
	s.writes.Wait()
}

// pass extracts the current snapshot into the store and returns the number
// of new people.
func (s *Session) pass(ctx context.Context) int {
	snap, err := s.document.Snapshot(ctx)
	if err != nil {
		s.logger.Warn("snapshot failed", "err", err)
		return 0
	}

	result, err := s.extractor.Extract(snap)
	if err != nil {
		s.logger.Warn("extract failed", "err", err)
		return 0
	}
	for _, e := range result.Errors {
		s.logger.Warn("card skipped", "err", e)
	}

	added := 0
	for _, p := range result.People {
		if s.store.InsertIfNew(p) {
			added++
		}
	}

	if added > 0 {
		s.logger.Info("found new people", "new", added, "total", s.store.Len())
		s.persist(ctx)
	}
	return added
}

// persist writes the current store to storage and reports the count. Writes
// run in the background and complete in the order they were issued.
func (s *Session) persist(ctx context.Context) {
	people := s.store.Snapshot()
	count := len(people)

	data, err := roster.EncodePeople(people)
	if err != nil {
		s.logger.Error("encode people", "err", err)
		return
	}

	ctx = context.WithoutCancel(ctx)
	prev := s.lastWrite
	done := make(chan struct{})
	s.lastWrite = done

	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		defer close(done)
		if prev != nil {
			<-prev
		}

		if s.storage != nil {
			if err := s.storage.Set(ctx, roster.DataKey, data); err != nil {
				s.logger.Error("save people", "err", err)
			}
		}
		if s.notifier != nil {
			s.notifier.NotifyCount(count)
		}
	}()
}
