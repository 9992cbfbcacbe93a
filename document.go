package roster

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Snapshot is the rendered markup of the document at one moment.
type Snapshot struct {
	// URL is the document location, used to resolve relative profile links.
	URL string

	// HTML is the serialized element tree.
	HTML string
}

// Document provides snapshots of a live, script-rendered page.
type Document interface {
	// Snapshot returns the current rendered markup.
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// ExtractResult holds the person cards found in one snapshot.
type ExtractResult struct {
	// People are the valid candidates in document order.
	People []Person

	// Cards is the number of card elements matched by Selector.
	Cards int

	// Selector is the card selector that produced the matches.
	// Empty when no selector matched.
	Selector string

	// Errors holds per-card failures. A failed card is skipped and the
	// rest of the batch is still processed.
	Errors []error
}

// Extractor reads person cards out of a document snapshot.
type Extractor interface {
	// Extract returns candidate people. Per-card problems are reported in
	// ExtractResult.Errors; an error is returned only when the snapshot as a
	// whole cannot be read.
	Extract(snap *Snapshot) (*ExtractResult, error)
}

// ElementError describes a card that could not be extracted.
type ElementError struct {
	Index int
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("card %d: %v", e.Index, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// ChangeKind classifies a document change notification.
type ChangeKind int

// Change kinds reported by a ChangeObservable.
const (
	ChangeChildList ChangeKind = iota
	ChangeAttributes
	ChangeScroll
)

// Change is a single document change notification.
type Change struct {
	Kind ChangeKind

	// Added is the number of nodes added by a ChangeChildList change.
	Added int
}

// ChangeBatch is a group of changes delivered together.
type ChangeBatch []Change

// HasNewContent reports whether the batch may have surfaced new cards:
// a child-list change that added nodes, or a scroll.
func (b ChangeBatch) HasNewContent() bool {
	for _, c := range b {
		switch c.Kind {
		case ChangeChildList:
			if c.Added > 0 {
				return true
			}
		case ChangeScroll:
			return true
		}
	}
	return false
}

// ChangeObservable delivers batches of document changes.
type ChangeObservable interface {
	// Subscribe starts delivering batches to fn until unsubscribe is called.
	// Returns ENOTFOUND when the document has no container to observe.
	// fn may be called from any goroutine.
	Subscribe(ctx context.Context, fn func(ChangeBatch)) (unsubscribe func(), err error)
}

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop cancels the callback. Safe to call more than once.
	Stop()
}

// Scheduler runs callbacks after a delay or on a fixed interval.
// Callbacks run on the session's event loop, never concurrently.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}

// Dispatcher queues work onto a single event loop goroutine.
type Dispatcher interface {
	Post(fn func()) bool
}

// LoadMoreClicker activates the page's "show more" control.
type LoadMoreClicker interface {
	// ClickLoadMore clicks a visible load-more control. It returns false with
	// a nil error when no such control is present.
	ClickLoadMore(ctx context.Context) (clicked bool, err error)
}

// LoadMoreSelector matches elements that can act as a load-more control.
const LoadMoreSelector = "button, [role=button]"

// ContainerChain returns the selectors tried, in order, to find the element
// whose subtree is observed for new cards.
func ContainerChain() []string {
	return []string{".scaffold-finite-scroll__content", "main", "body"}
}

// loadMorePairs are word pairs that identify a load-more control label.
var loadMorePairs = [][2]string{
	{"show", "more"},
	{"load", "more"},
	{"see", "more"},
}

// IsLoadMoreLabel reports whether a control's visible text asks for more
// results. Both words of a pair must appear, in any order and case.
func IsLoadMoreLabel(text string) bool {
	text = strings.ToLower(text)
	for _, pair := range loadMorePairs {
		if strings.Contains(text, pair[0]) && strings.Contains(text, pair[1]) {
			return true
		}
	}
	return false
}
