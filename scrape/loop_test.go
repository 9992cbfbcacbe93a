package scrape_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/roster"
	"github.com/fwojciec/roster/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLoop(t *testing.T) (*scrape.Loop, context.CancelFunc) {
	t.Helper()

	loop := scrape.NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = loop.Run(ctx) }()
	t.Cleanup(cancel)
	return loop, cancel
}

func TestLoop(t *testing.T) {
	t.Parallel()

	t.Run("runs callbacks in order", func(t *testing.T) {
		t.Parallel()

		loop, _ := runLoop(t)
		var order []int
		for i := 0; i < 10; i++ {
			i := i
			require.True(t, loop.Post(func() { order = append(order, i) }))
		}

		var got []int
		require.NoError(t, loop.Do(context.Background(), func() { got = append(got, order...) }))

		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
	})

	t.Run("rejects work after stopping", func(t *testing.T) {
		t.Parallel()

		loop, cancel := runLoop(t)
		cancel()
		<-loop.Done()

		assert.False(t, loop.Post(func() {}))
		err := loop.Do(context.Background(), func() {})
		assert.Equal(t, roster.ECONFLICT, roster.ErrorCode(err))
	})
}

func TestClock(t *testing.T) {
	t.Parallel()

	t.Run("AfterFunc fires on the loop", func(t *testing.T) {
		t.Parallel()

		loop, _ := runLoop(t)
		clock := scrape.NewClock(loop)
		fired := make(chan struct{})

		clock.AfterFunc(10*time.Millisecond, func() { close(fired) })

		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatal("timer did not fire")
		}
	})

	t.Run("stopped timer does not fire", func(t *testing.T) {
		t.Parallel()

		loop, _ := runLoop(t)
		clock := scrape.NewClock(loop)
		var fired atomic.Bool

		tm := clock.AfterFunc(20*time.Millisecond, func() { fired.Store(true) })
		tm.Stop()
		tm.Stop()
		time.Sleep(60 * time.Millisecond)

		assert.False(t, fired.Load())
	})

	t.Run("stopping from the loop drops a queued tick", func(t *testing.T) {
		t.Parallel()

		loop, _ := runLoop(t)
		clock := scrape.NewClock(loop)
		var ticks atomic.Int32

		var tm roster.Timer
		require.NoError(t, loop.Do(context.Background(), func() {
			tm = clock.Every(5*time.Millisecond, func() { ticks.Add(1) })
		}))
		require.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)

		require.NoError(t, loop.Do(context.Background(), func() { tm.Stop() }))
		after := ticks.Load()
		time.Sleep(30 * time.Millisecond)

		assert.Equal(t, after, ticks.Load())
	})
}
