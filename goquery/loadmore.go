package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/roster"
	"golang.org/x/net/html"
)

// FindLoadMore returns the label of the first load-more control in the HTML
// document that is not statically hidden. found is false when there is none.
func FindLoadMore(doc string) (label string, found bool, err error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return "", false, roster.Errorf(roster.EINVALID, "failed to parse HTML: %v", err)
	}

	d.Find(roster.LoadMoreSelector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := collapseSpace(el.Text())
		if !roster.IsLoadMoreLabel(text) {
			return true
		}
		if isDisabled(el.Get(0)) || isHidden(el.Get(0)) {
			return true
		}
		label, found = text, true
		return false
	})

	return label, found, nil
}

// isHidden reports whether n or one of its ancestors is hidden by markup.
func isHidden(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		for _, a := range n.Attr {
			switch strings.ToLower(a.Key) {
			case "hidden":
				return true
			case "aria-hidden":
				if strings.EqualFold(strings.TrimSpace(a.Val), "true") {
					return true
				}
			case "style":
				style := strings.ToLower(strings.Join(strings.Fields(a.Val), ""))
				if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
					return true
				}
			}
		}
	}
	return false
}

func isDisabled(n *html.Node) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, "disabled") {
			return true
		}
	}
	return false
}
