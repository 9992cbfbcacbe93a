package config

// SiteConfig overrides the selectors used for one document host. Empty
// lists fall back to the built-in LinkedIn selectors.
type SiteConfig struct {
	CardSelectors     []string `yaml:"card_selectors"`
	NameSelectors     []string `yaml:"name_selectors"`
	PositionSelectors []string `yaml:"position_selectors"`
	ProfileMarker     string   `yaml:"profile_marker"`
}
