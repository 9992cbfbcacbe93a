package main

import (
	"context"

	"github.com/fwojciec/roster"
	"github.com/fwojciec/roster/config"
)

// loadPeople reads the persisted people list. A missing list is empty.
func loadPeople(ctx context.Context, storage roster.KeyValueStore) ([]roster.Person, error) {
	data, err := storage.Get(ctx, roster.DataKey)
	if roster.ErrorCode(err) == roster.ENOTFOUND {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return roster.DecodePeople(data)
}

// exportSettings returns the export settings from cfg with non-empty flag
// values taking precedence.
func exportSettings(cfg *config.Config, company, emailFormat string) roster.ExportSettings {
	settings := roster.ExportSettings{
		Company:     cfg.Company,
		EmailFormat: cfg.EmailFormat,
	}
	if company != "" {
		settings.Company = company
	}
	if emailFormat != "" {
		settings.EmailFormat = emailFormat
	}
	return settings
}
