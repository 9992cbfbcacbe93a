package scrape

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/roster"
)

var _ roster.Scheduler = (*Clock)(nil)

// Clock schedules callbacks in real time and runs them through a
// Dispatcher. A timer stopped on the dispatcher goroutine never runs a
// callback afterwards, even one that was already queued.
type Clock struct {
	dispatcher roster.Dispatcher
}

// NewClock creates a Clock that delivers callbacks through d.
func NewClock(d roster.Dispatcher) *Clock {
	return &Clock{dispatcher: d}
}

// AfterFunc runs fn once after d.
func (c *Clock) AfterFunc(d time.Duration, fn func()) roster.Timer {
	t := &clockTimer{}
	tm := time.AfterFunc(d, func() {
		c.dispatcher.Post(func() {
			if t.stopped.Load() {
				return
			}
			fn()
		})
	})
	t.cancel = func() { tm.Stop() }
	return t
}

// Every runs fn every d until the timer is stopped.
func (c *Clock) Every(d time.Duration, fn func()) roster.Timer {
	t := &clockTimer{}
	ticker := time.NewTicker(d)
	quit := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				c.dispatcher.Post(func() {
					if t.stopped.Load() {
						return
					}
					fn()
				})
			}
		}
	}()
	t.cancel = func() { close(quit) }
	return t
}

type clockTimer struct {
	stopped atomic.Bool
	once    sync.Once
	cancel  func()
}

func (t *clockTimer) Stop() {
	t.stopped.Store(true)
	t.once.Do(t.cancel)
}
