package mock

import (
	"context"

	"github.com/fwojciec/roster"
)

var _ roster.Document = (*Document)(nil)

// Document is a mock implementation of roster.Document.
type Document struct {
	SnapshotFn func(ctx context.Context) (*roster.Snapshot, error)
}

func (d *Document) Snapshot(ctx context.Context) (*roster.Snapshot, error) {
	return d.SnapshotFn(ctx)
}

var _ roster.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of roster.Extractor.
type Extractor struct {
	ExtractFn func(snap *roster.Snapshot) (*roster.ExtractResult, error)
}

func (e *Extractor) Extract(snap *roster.Snapshot) (*roster.ExtractResult, error) {
	return e.ExtractFn(snap)
}

var _ roster.LoadMoreClicker = (*LoadMoreClicker)(nil)

// LoadMoreClicker is a mock implementation of roster.LoadMoreClicker.
type LoadMoreClicker struct {
	ClickLoadMoreFn func(ctx context.Context) (bool, error)
}

func (c *LoadMoreClicker) ClickLoadMore(ctx context.Context) (bool, error) {
	return c.ClickLoadMoreFn(ctx)
}
