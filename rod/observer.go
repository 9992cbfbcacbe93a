package rod

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/roster"
	"github.com/go-rod/rod"
)

// DefaultPollInterval is how often the observer samples the page.
const DefaultPollInterval = 250 * time.Millisecond

var _ roster.ChangeObservable = (*Observer)(nil)

// sampleJS reads the observed container: its element count, a copy of its
// markup for fingerprinting and the window scroll offset.
const sampleJS = `(sel) => {
	const el = document.querySelector(sel);
	return JSON.stringify({
		found: !!el,
		count: el ? el.getElementsByTagName('*').length : 0,
		html: el ? el.innerHTML : '',
		scrollY: Math.round(window.scrollY || 0),
	});
}`

// Observer reports changes to a page by sampling it on an interval. A
// change in the container's markup fingerprint becomes a child-list change
// carrying the number of added elements; a change in scroll offset becomes
// a scroll change.
type Observer struct {
	page     *rod.Page
	chain    []string
	interval time.Duration
	logger   *slog.Logger
}

// ObserverOption configures an Observer.
type ObserverOption func(*Observer)

// WithPollInterval sets the sampling interval.
func WithPollInterval(d time.Duration) ObserverOption {
	return func(o *Observer) {
		o.interval = d
	}
}

// WithContainerChain sets the selectors tried to find the observed element.
func WithContainerChain(chain []string) ObserverOption {
	return func(o *Observer) {
		o.chain = chain
	}
}

// WithObserverLogger sets the logger for sampling failures.
func WithObserverLogger(logger *slog.Logger) ObserverOption {
	return func(o *Observer) {
		o.logger = logger
	}
}

// NewObserver creates an Observer for page.
func NewObserver(page *rod.Page, opts ...ObserverOption) *Observer {
	o := &Observer{
		page:     page,
		chain:    roster.ContainerChain(),
		interval: DefaultPollInterval,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type sampleResult struct {
	Found   bool   `json:"found"`
	Count   int    `json:"count"`
	HTML    string `json:"html"`
	ScrollY int    `json:"scrollY"`
}

// Subscribe finds the container and starts sampling. fn is called from the
// sampling goroutine. Returns ENOTFOUND when no selector in the chain
// matches.
func (o *Observer) Subscribe(ctx context.Context, fn func(roster.ChangeBatch)) (func(), error) {
	sel, err := o.container(ctx)
	if err != nil {
		return nil, err
	}

	last, err := o.sample(ctx, sel)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	var once sync.Once
	unsubscribe := func() { once.Do(cancel) }

	go o.poll(ctx, sel, last, fn)

	o.logger.Debug("observing container", "selector", sel, "interval", o.interval)
	return unsubscribe, nil
}

func (o *Observer) container(ctx context.Context) (string, error) {
	p := o.page.Context(ctx)
	for _, sel := range o.chain {
		has, _, err := p.Has(sel)
		if err != nil {
			return "", fmt.Errorf("finding container %s: %w", sel, err)
		}
		if has {
			return sel, nil
		}
	}
	return "", roster.Errorf(roster.ENOTFOUND, "no container to observe")
}

// fingerprint is the comparable state of one sample.
type fingerprint struct {
	hash    uint64
	count   int
	scrollY int
}

func (o *Observer) sample(ctx context.Context, sel string) (fingerprint, error) {
	res, err := o.page.Context(ctx).Eval(sampleJS, sel)
	if err != nil {
		return fingerprint{}, fmt.Errorf("sampling page: %w", err)
	}

	var p sampleResult
	if err := json.Unmarshal([]byte(res.Value.Str()), &p); err != nil {
		return fingerprint{}, fmt.Errorf("decoding sample: %w", err)
	}
	if !p.Found {
		return fingerprint{}, roster.Errorf(roster.ENOTFOUND, "container %s detached", sel)
	}

	return fingerprint{
		hash:    xxhash.Sum64String(p.HTML),
		count:   p.Count,
		scrollY: p.ScrollY,
	}, nil
}

func (o *Observer) poll(ctx context.Context, sel string, last fingerprint, fn func(roster.ChangeBatch)) {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		cur, err := o.sample(ctx, sel)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			o.logger.Warn("sample failed", "selector", sel, "err", err)
			continue
		}

		if batch := diff(last, cur); len(batch) > 0 {
			fn(batch)
		}
		last = cur
	}
}

// diff converts two consecutive samples into change notifications. Sampling
// cannot tell replaced children from edited ones, so changed markup with a
// steady count reports one added child. Only a shrinking count is reported
// as an attribute change.
func diff(prev, cur fingerprint) roster.ChangeBatch {
	var batch roster.ChangeBatch
	if cur.hash != prev.hash {
		if delta := cur.count - prev.count; delta >= 0 {
			batch = append(batch, roster.Change{Kind: roster.ChangeChildList, Added: max(delta, 1)})
		} else {
			batch = append(batch, roster.Change{Kind: roster.ChangeAttributes})
		}
	}
	if cur.scrollY != prev.scrollY {
		batch = append(batch, roster.Change{Kind: roster.ChangeScroll})
	}
	return batch
}
