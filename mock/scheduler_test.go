package mock_test

import (
	"testing"
	"time"

	"github.com/fwojciec/roster/mock"
	"github.com/stretchr/testify/assert"
)

func TestScheduler_AfterFunc(t *testing.T) {
	t.Parallel()

	t.Run("fires once when due", func(t *testing.T) {
		t.Parallel()

		s := &mock.Scheduler{}
		calls := 0
		s.AfterFunc(500*time.Millisecond, func() { calls++ })

		s.Advance(499 * time.Millisecond)
		assert.Equal(t, 0, calls)

		s.Advance(time.Millisecond)
		assert.Equal(t, 1, calls)

		s.Advance(time.Second)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 0, s.Pending())
	})

	t.Run("stopped timer never fires", func(t *testing.T) {
		t.Parallel()

		s := &mock.Scheduler{}
		calls := 0
		tm := s.AfterFunc(time.Second, func() { calls++ })
		tm.Stop()
		tm.Stop()

		s.Advance(2 * time.Second)

		assert.Equal(t, 0, calls)
	})

	t.Run("fires in due order across nested scheduling", func(t *testing.T) {
		t.Parallel()

		s := &mock.Scheduler{}
		var order []string
		s.AfterFunc(300*time.Millisecond, func() { order = append(order, "b") })
		s.AfterFunc(100*time.Millisecond, func() {
			order = append(order, "a")
			s.AfterFunc(100*time.Millisecond, func() { order = append(order, "a2") })
		})

		s.Advance(time.Second)

		assert.Equal(t, []string{"a", "a2", "b"}, order)
		assert.Equal(t, time.Second, s.Now())
	})
}

func TestScheduler_Every(t *testing.T) {
	t.Parallel()

	s := &mock.Scheduler{}
	calls := 0
	tm := s.Every(time.Second, func() { calls++ })

	s.Advance(3500 * time.Millisecond)
	assert.Equal(t, 3, calls)

	tm.Stop()
	s.Advance(3 * time.Second)
	assert.Equal(t, 3, calls)
}
