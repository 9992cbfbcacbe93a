package mock

import (
	"context"

	"github.com/fwojciec/roster"
)

var _ roster.ChangeObservable = (*ChangeObservable)(nil)

// ChangeObservable is a mock implementation of roster.ChangeObservable.
type ChangeObservable struct {
	SubscribeFn func(ctx context.Context, fn func(roster.ChangeBatch)) (func(), error)
}

func (o *ChangeObservable) Subscribe(ctx context.Context, fn func(roster.ChangeBatch)) (func(), error) {
	return o.SubscribeFn(ctx, fn)
}

var _ roster.ChangeObservable = (*ChangeFeed)(nil)

// ChangeFeed is a roster.ChangeObservable driven by the test. Batches passed
// to Emit are delivered synchronously to the current subscriber.
type ChangeFeed struct {
	// Err, when set, is returned by Subscribe.
	Err error

	fn            func(roster.ChangeBatch)
	Subscriptions int
}

// Subscribe registers fn as the only subscriber.
func (f *ChangeFeed) Subscribe(_ context.Context, fn func(roster.ChangeBatch)) (func(), error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.fn = fn
	f.Subscriptions++
	return func() { f.fn = nil }, nil
}

// Subscribed reports whether a subscriber is registered.
func (f *ChangeFeed) Subscribed() bool {
	return f.fn != nil
}

// Emit delivers batch to the subscriber, if any.
func (f *ChangeFeed) Emit(batch ...roster.Change) {
	if f.fn != nil {
		f.fn(roster.ChangeBatch(batch))
	}
}

// EmitAdded delivers a child-list change that added n nodes.
func (f *ChangeFeed) EmitAdded(n int) {
	f.Emit(roster.Change{Kind: roster.ChangeChildList, Added: n})
}
