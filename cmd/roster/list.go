package main

import (
	"fmt"

	"github.com/fwojciec/roster"
	"github.com/fwojciec/roster/markdown"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	people, err := loadPeople(deps.Ctx, deps.Storage)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", roster.ErrorMessage(err))
		return err
	}

	limit := c.Limit
	if limit <= 0 {
		limit = deps.Config.PreviewLimit
	}

	if c.Markdown {
		return markdown.WritePreview(deps.Stdout, people, limit)
	}

	if len(people) == 0 {
		fmt.Fprintln(deps.Stdout, "No people collected. Use 'roster watch' to start.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%d people collected\n", len(people))
	fmt.Fprintln(deps.Stdout, roster.FormatPreview(people, limit))

	return nil
}
