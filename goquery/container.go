package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/roster"
)

// FindContainer returns the first selector in chain that matches an element
// of the HTML document. It returns ENOTFOUND when none match.
func FindContainer(html string, chain []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", roster.Errorf(roster.EINVALID, "failed to parse HTML: %v", err)
	}
	for _, sel := range chain {
		if doc.Find(sel).Length() > 0 {
			return sel, nil
		}
	}
	return "", roster.Errorf(roster.ENOTFOUND, "no container matches %s", strings.Join(chain, ", "))
}
