package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/roster"
	"github.com/go-rod/rod"
)

var _ roster.Document = (*Document)(nil)

// Document snapshots the rendered markup of a live page.
type Document struct {
	page *rod.Page
}

// NewDocument wraps page.
func NewDocument(page *rod.Page) *Document {
	return &Document{page: page}
}

// Snapshot returns the page's current URL and serialized DOM.
func (d *Document) Snapshot(ctx context.Context) (*roster.Snapshot, error) {
	p := d.page.Context(ctx)

	info, err := p.Info()
	if err != nil {
		return nil, fmt.Errorf("page info: %w", err)
	}

	html, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("page html: %w", err)
	}

	return &roster.Snapshot{URL: info.URL, HTML: html}, nil
}
