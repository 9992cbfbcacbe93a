package mock

import (
	"context"

	"github.com/fwojciec/roster"
)

var _ roster.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore is a mock implementation of roster.KeyValueStore.
type KeyValueStore struct {
	GetFn       func(ctx context.Context, key string) ([]byte, error)
	SetFn       func(ctx context.Context, key string, value []byte) error
	RemoveFn    func(ctx context.Context, key string) error
	SubscribeFn func(fn func(roster.StorageChange)) func()
}

func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.GetFn(ctx, key)
}

func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetFn(ctx, key, value)
}

func (s *KeyValueStore) Remove(ctx context.Context, key string) error {
	return s.RemoveFn(ctx, key)
}

func (s *KeyValueStore) Subscribe(fn func(roster.StorageChange)) func() {
	return s.SubscribeFn(fn)
}

var _ roster.CountNotifier = (*CountNotifier)(nil)

// CountNotifier is a mock implementation of roster.CountNotifier.
type CountNotifier struct {
	NotifyCountFn func(count int)
}

func (n *CountNotifier) NotifyCount(count int) {
	n.NotifyCountFn(count)
}

var _ roster.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of roster.SessionService.
type SessionService struct {
	CreateSessionFn func(ctx context.Context, record *roster.SessionRecord) error
	FinishSessionFn func(ctx context.Context, id string, count int) error
	FindSessionsFn  func(ctx context.Context, filter roster.SessionFilter) ([]*roster.SessionRecord, error)
}

func (s *SessionService) CreateSession(ctx context.Context, record *roster.SessionRecord) error {
	return s.CreateSessionFn(ctx, record)
}

func (s *SessionService) FinishSession(ctx context.Context, id string, count int) error {
	return s.FinishSessionFn(ctx, id, count)
}

func (s *SessionService) FindSessions(ctx context.Context, filter roster.SessionFilter) ([]*roster.SessionRecord, error) {
	return s.FindSessionsFn(ctx, filter)
}
