// Package config holds runtime settings for roster and loads them from an
// optional YAML file.
package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "roster"

	// DefaultDebounceDelay is the quiet period after a document change
	// before an extraction pass runs.
	DefaultDebounceDelay = 500 * time.Millisecond

	// DefaultPaginationInterval is how often the load-more control is tried.
	DefaultPaginationInterval = 3 * time.Second

	// DefaultPollInterval is how often the live page is sampled for changes.
	DefaultPollInterval = 250 * time.Millisecond

	// DefaultStartDelay is the wait between page load and the start of
	// monitoring.
	DefaultStartDelay = time.Second

	// DefaultPreviewLimit is the number of people shown by previews.
	DefaultPreviewLimit = 10

	// DefaultClickRate caps load-more clicks per second.
	DefaultClickRate = 1.0
)

// Config holds all settings for one roster invocation.
type Config struct {
	DebounceDelay      time.Duration
	PaginationInterval time.Duration
	PollInterval       time.Duration
	StartDelay         time.Duration
	PreviewLimit       int
	ClickRate          float64

	// Company and EmailFormat are applied at export time.
	Company     string
	EmailFormat string

	// Headless runs Chrome without a window.
	Headless bool

	// UserDataDir is the Chrome profile directory. A persistent profile
	// keeps the user signed in between runs.
	UserDataDir string

	// Sites maps document hosts to selector overrides.
	Sites map[string]SiteConfig
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		DebounceDelay:      DefaultDebounceDelay,
		PaginationInterval: DefaultPaginationInterval,
		PollInterval:       DefaultPollInterval,
		StartDelay:         DefaultStartDelay,
		PreviewLimit:       DefaultPreviewLimit,
		ClickRate:          DefaultClickRate,
		Headless:           true,
		UserDataDir:        filepath.Join(DataDir(), "chrome"),
		Sites:              make(map[string]SiteConfig),
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.DebounceDelay <= 0 {
		return ErrInvalidDebounceDelay
	}
	if c.PaginationInterval <= 0 {
		return ErrInvalidPaginationInterval
	}
	if c.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}
	if c.StartDelay < 0 {
		return ErrInvalidStartDelay
	}
	if c.PreviewLimit < 0 {
		return ErrInvalidPreviewLimit
	}
	if c.ClickRate <= 0 {
		return ErrInvalidClickRate
	}
	for host, site := range c.Sites {
		if host == "" || len(site.CardSelectors) == 0 {
			return ErrInvalidSite
		}
	}
	return nil
}

// Apply overrides c with every value set in f.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}
	if f.DebounceDelay != nil {
		c.DebounceDelay = *f.DebounceDelay
	}
	if f.PaginationInterval != nil {
		c.PaginationInterval = *f.PaginationInterval
	}
	if f.PollInterval != nil {
		c.PollInterval = *f.PollInterval
	}
	if f.StartDelay != nil {
		c.StartDelay = *f.StartDelay
	}
	if f.PreviewLimit != nil {
		c.PreviewLimit = *f.PreviewLimit
	}
	if f.ClickRate != nil {
		c.ClickRate = *f.ClickRate
	}
	if f.Company != "" {
		c.Company = f.Company
	}
	if f.EmailFormat != "" {
		c.EmailFormat = f.EmailFormat
	}
	if f.Headless != nil {
		c.Headless = *f.Headless
	}
	if f.UserDataDir != "" {
		c.UserDataDir = f.UserDataDir
	}
	for host, site := range f.Sites {
		c.Sites[host] = site
	}
}

// DataDir returns the XDG data directory for roster.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// ConfigDir returns the XDG config directory for roster.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
