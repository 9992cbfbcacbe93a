package goquery

// Strategy is an ordered set of selector chains describing where person
// cards live in a page and how to read them.
type Strategy struct {
	// CardSelectors are tried in order; the first one with any match is
	// used and the others are ignored.
	CardSelectors []string `yaml:"card_selectors"`

	// NameSelectors are tried in order within a card; the first hit wins.
	NameSelectors []string `yaml:"name_selectors"`

	// PositionSelectors are tried in order within a card; the first hit wins.
	PositionSelectors []string `yaml:"position_selectors"`

	// ProfileMarker is the substring identifying a profile link href.
	ProfileMarker string `yaml:"profile_marker"`
}

// DefaultStrategy returns the selectors for LinkedIn company people pages.
func DefaultStrategy() Strategy {
	return Strategy{
		CardSelectors: []string{
			".org-people-profile-card",
			".scaffold-finite-scroll__content li",
		},
		NameSelectors: []string{
			".artdeco-entity-lockup__title a",
			`a[data-anonymize="person-name"]`,
			".artdeco-entity-lockup__title",
		},
		PositionSelectors: []string{
			".artdeco-entity-lockup__subtitle",
		},
		ProfileMarker: "/in/",
	}
}

// Merge returns s with every empty field filled from fallback.
func (s Strategy) Merge(fallback Strategy) Strategy {
	if len(s.CardSelectors) == 0 {
		s.CardSelectors = fallback.CardSelectors
	}
	if len(s.NameSelectors) == 0 {
		s.NameSelectors = fallback.NameSelectors
	}
	if len(s.PositionSelectors) == 0 {
		s.PositionSelectors = fallback.PositionSelectors
	}
	if s.ProfileMarker == "" {
		s.ProfileMarker = fallback.ProfileMarker
	}
	return s
}
