// Package goquery reads person cards, observation containers and load-more
// controls out of HTML snapshots using CSS selector chains.
package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/roster"
)

var _ roster.Extractor = (*Extractor)(nil)

// Extractor implements roster.Extractor using a strategy chosen per
// document host.
type Extractor struct {
	registry *Registry
}

// NewExtractor creates an Extractor. A nil registry uses DefaultStrategy
// for every document.
func NewExtractor(registry *Registry) *Extractor {
	if registry == nil {
		registry = NewRegistry(DefaultStrategy())
	}
	return &Extractor{registry: registry}
}

// Extract parses the snapshot and returns the valid people it contains, in
// document order. Failures on individual cards are collected in the result.
func (e *Extractor) Extract(snap *roster.Snapshot) (*roster.ExtractResult, error) {
	if snap == nil {
		return nil, roster.Errorf(roster.EINVALID, "snapshot required")
	}

	base, err := url.Parse(snap.URL)
	if err != nil {
		return nil, roster.Errorf(roster.EINVALID, "invalid document URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return nil, roster.Errorf(roster.EINVALID, "failed to parse HTML: %v", err)
	}

	strategy := e.registry.ForURL(snap.URL)
	result := &roster.ExtractResult{}

	cards, selector := selectCards(doc.Selection, strategy.CardSelectors)
	if cards == nil {
		return result, nil
	}
	result.Cards = cards.Length()
	result.Selector = selector

	cards.Each(func(i int, card *goquery.Selection) {
		p, ok, err := readCard(card, base, strategy)
		if err != nil {
			result.Errors = append(result.Errors, &roster.ElementError{Index: i, Err: err})
			return
		}
		if ok {
			result.People = append(result.People, p)
		}
	})

	return result, nil
}

// selectCards returns the matches of the first selector that matches
// anything.
func selectCards(root *goquery.Selection, selectors []string) (*goquery.Selection, string) {
	for _, sel := range selectors {
		if found := root.Find(sel); found.Length() > 0 {
			return found, sel
		}
	}
	return nil, ""
}

// readCard extracts one person. ok is false when the card has no valid
// name. A panic while reading is converted to an error.
func readCard(card *goquery.Selection, base *url.URL, s Strategy) (p roster.Person, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, ok, err = roster.Person{}, false, fmt.Errorf("panic: %v", r)
		}
	}()

	nameEl := firstMatch(card, s.NameSelectors)
	if nameEl == nil {
		return roster.Person{}, false, nil
	}
	name := roster.NormalizeName(nameEl.Text())
	if !roster.ValidName(name) {
		return roster.Person{}, false, nil
	}

	p = roster.Person{Name: name}

	if posEl := firstMatch(card, s.PositionSelectors); posEl != nil {
		p.Position = collapseSpace(posEl.Text())
	}

	if s.ProfileMarker != "" {
		link := card.Find("a[href]").FilterFunction(func(_ int, a *goquery.Selection) bool {
			return strings.Contains(a.AttrOr("href", ""), s.ProfileMarker)
		}).First()
		if link.Length() > 0 {
			profileURL, err := resolveProfileURL(base, link.AttrOr("href", ""))
			if err != nil {
				return roster.Person{}, false, err
			}
			p.ProfileURL = profileURL
		}
	}

	return p, true, nil
}

// firstMatch returns the first element matched by the first selector with a
// hit, or nil.
func firstMatch(root *goquery.Selection, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if found := root.Find(sel).First(); found.Length() > 0 {
			return found
		}
	}
	return nil
}

// resolveProfileURL makes href absolute and drops the query string and
// anything after it.
func resolveProfileURL(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("invalid profile link %q: %w", href, err)
	}
	resolved := base.ResolveReference(ref).String()
	if i := strings.IndexByte(resolved, '?'); i >= 0 {
		resolved = resolved[:i]
	}
	return resolved, nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
