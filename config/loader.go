package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up in the working
// directory.
const DefaultConfigFile = ".roster.yaml"

// DBEnv names the environment variable overriding the database path.
const DBEnv = "ROSTER_DB"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file. Unset fields leave the defaults in
// place.
type File struct {
	Company            string                `yaml:"company"`
	EmailFormat        string                `yaml:"email_format"`
	DebounceDelay      *time.Duration        `yaml:"debounce_delay"`
	PaginationInterval *time.Duration        `yaml:"pagination_interval"`
	PollInterval       *time.Duration        `yaml:"poll_interval"`
	StartDelay         *time.Duration        `yaml:"start_delay"`
	PreviewLimit       *int                  `yaml:"preview_limit"`
	ClickRate          *float64              `yaml:"click_rate"`
	Headless           *bool                 `yaml:"headless"`
	UserDataDir        string                `yaml:"user_data_dir"`
	Sites              map[string]SiteConfig `yaml:"sites"`
}

// LoadFile reads a configuration file. It returns ErrConfigNotFound when
// the file does not exist.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Sites == nil {
		f.Sites = make(map[string]SiteConfig)
	}
	return &f, nil
}

// FindFile returns the configuration file to load, or "" when there is none.
// An explicit path is used as given; otherwise .roster.yaml in the working
// directory, then config.yaml in the XDG config directory.
func FindFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	p := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}

	return ""
}

// DefaultDBPath returns the database path from getenv(DBEnv), or a file in
// the XDG data directory.
func DefaultDBPath(getenv func(string) string) string {
	if getenv != nil {
		if path := getenv(DBEnv); path != "" {
			return path
		}
	}
	return filepath.Join(DataDir(), "roster.db")
}
