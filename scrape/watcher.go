package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/roster"
)

// Watcher runs extraction passes in response to document changes. Bursts of
// changes are collapsed by a debounce timer into a single pass.
//
// Watcher is not safe for concurrent use; all methods and callbacks must run
// on the same goroutine.
type Watcher struct {
	changes    roster.ChangeObservable
	scheduler  roster.Scheduler
	dispatcher roster.Dispatcher
	delay      time.Duration
	pass       func(ctx context.Context)
	logger     *slog.Logger

	ctx         context.Context
	observing   bool
	unsubscribe func()
	debounce    roster.Timer
}

// NewWatcher creates an idle Watcher. pass is invoked for the immediate
// pass on activation and whenever the debounce timer fires. Change batches
// are handed to the watcher through dispatcher; a nil dispatcher handles
// them on the delivering goroutine.
func NewWatcher(changes roster.ChangeObservable, scheduler roster.Scheduler, dispatcher roster.Dispatcher, delay time.Duration, pass func(ctx context.Context), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{
		changes:    changes,
		scheduler:  scheduler,
		dispatcher: dispatcher,
		delay:      delay,
		pass:       pass,
		logger:     logger,
	}
}

// Activate runs one pass and starts observing the document. It does nothing
// when the watcher is already observing. When the document has nothing to
// observe the error is returned and the watcher stays idle.
func (w *Watcher) Activate(ctx context.Context) error {
	if w.observing {
		return nil
	}

	w.ctx = ctx
	w.pass(ctx)

	unsubscribe, err := w.changes.Subscribe(ctx, w.deliver)
	if err != nil {
		return fmt.Errorf("observe document: %w", err)
	}

	w.unsubscribe = unsubscribe
	w.observing = true
	w.logger.Debug("observing document", "debounce", w.delay)
	return nil
}

// Deactivate stops observing and cancels a pending pass. Safe to call more
// than once.
func (w *Watcher) Deactivate() {
	if w.debounce != nil {
		w.debounce.Stop()
		w.debounce = nil
	}
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
	if w.observing {
		w.logger.Debug("stopped observing document")
	}
	w.observing = false
}

// Observing reports whether the watcher is active.
func (w *Watcher) Observing() bool {
	return w.observing
}

// Pending reports whether a debounced pass is scheduled.
func (w *Watcher) Pending() bool {
	return w.debounce != nil
}

func (w *Watcher) deliver(batch roster.ChangeBatch) {
	if w.dispatcher == nil {
		w.handle(batch)
		return
	}
	w.dispatcher.Post(func() { w.handle(batch) })
}

func (w *Watcher) handle(batch roster.ChangeBatch) {
	if !w.observing || !batch.HasNewContent() {
		return
	}
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = w.scheduler.AfterFunc(w.delay, w.fire)
}

func (w *Watcher) fire() {
	w.debounce = nil
	if !w.observing {
		return
	}
	w.pass(w.ctx)
}
