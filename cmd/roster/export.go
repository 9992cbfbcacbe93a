package main

import (
	"fmt"

	"github.com/fwojciec/roster"
	"github.com/fwojciec/roster/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	people, err := loadPeople(deps.Ctx, deps.Storage)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", roster.ErrorMessage(err))
		return err
	}

	if len(people) == 0 {
		err := roster.Errorf(roster.ENOTFOUND, "No data to export.")
		fmt.Fprintf(deps.Stderr, "error: %s\n", roster.ErrorMessage(err))
		return err
	}

	file := roster.Export(people, exportSettings(deps.Config, c.Company, c.EmailFormat), deps.Now())
	path, err := fs.NewExportWriter(c.Out).Write(file)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d people to %s\n", file.Rows, path)
	return nil
}
