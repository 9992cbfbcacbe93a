package mock

import (
	"time"

	"github.com/fwojciec/roster"
)

var _ roster.Scheduler = (*Scheduler)(nil)

// Scheduler is a roster.Scheduler running on virtual time. Callbacks fire
// on the goroutine calling Advance, in due-time order. Not safe for
// concurrent use.
type Scheduler struct {
	now    time.Duration
	seq    int
	timers []*virtualTimer
}

type virtualTimer struct {
	at      time.Duration
	every   time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *virtualTimer) Stop() {
	t.stopped = true
}

// AfterFunc schedules fn once, d after the current virtual time.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) roster.Timer {
	return s.add(d, 0, fn)
}

// Every schedules fn every d, starting d after the current virtual time.
func (s *Scheduler) Every(d time.Duration, fn func()) roster.Timer {
	if d <= 0 {
		d = time.Nanosecond
	}
	return s.add(d, d, fn)
}

// Now returns the elapsed virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, firing due callbacks in order.
// Callbacks may schedule or stop timers.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		t := s.next(target)
		if t == nil {
			break
		}
		s.now = t.at
		if t.every > 0 {
			t.at += t.every
		} else {
			t.stopped = true
		}
		t.fn()
	}
	s.now = target
	s.compact()
}

func (s *Scheduler) add(d, every time.Duration, fn func()) *virtualTimer {
	s.seq++
	t := &virtualTimer{at: s.now + d, every: every, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// next returns the earliest live timer due at or before target.
func (s *Scheduler) next(target time.Duration) *virtualTimer {
	var best *virtualTimer
	for _, t := range s.timers {
		if t.stopped || t.at > target {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	s.timers = live
}
