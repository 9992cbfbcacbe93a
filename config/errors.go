package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	ErrInvalidDebounceDelay      = errors.New("invalid debounce delay: must be positive")
	ErrInvalidPaginationInterval = errors.New("invalid pagination interval: must be positive")
	ErrInvalidPollInterval       = errors.New("invalid poll interval: must be positive")
	ErrInvalidStartDelay         = errors.New("invalid start delay: must be non-negative")
	ErrInvalidPreviewLimit       = errors.New("invalid preview limit: must be non-negative")
	ErrInvalidClickRate          = errors.New("invalid click rate: must be positive")
	ErrInvalidSite               = errors.New("invalid site: host and card selectors are required")
)
