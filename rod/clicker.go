package rod

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/roster"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/time/rate"
)

var _ roster.LoadMoreClicker = (*Clicker)(nil)

// Clicker clicks the first visible control whose text asks for more
// results. Clicks are throttled; a throttled attempt counts as a miss.
type Clicker struct {
	page    *rod.Page
	limiter *rate.Limiter
}

// NewClicker creates a Clicker allowing at most perSecond clicks per second.
func NewClicker(page *rod.Page, perSecond float64) *Clicker {
	return &Clicker{
		page:    page,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// ClickLoadMore clicks a visible load-more control. It returns false when
// there is none or the click budget is spent.
func (c *Clicker) ClickLoadMore(ctx context.Context) (bool, error) {
	if !c.limiter.Allow() {
		return false, nil
	}

	els, err := c.page.Context(ctx).Elements(roster.LoadMoreSelector)
	if err != nil {
		return false, fmt.Errorf("finding controls: %w", err)
	}

	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			continue
		}
		if !roster.IsLoadMoreLabel(strings.TrimSpace(text)) {
			continue
		}
		visible, err := el.Visible()
		if err != nil || !visible {
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return false, fmt.Errorf("clicking %q: %w", strings.TrimSpace(text), err)
		}
		return true, nil
	}

	return false, nil
}
