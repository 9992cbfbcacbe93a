package main

import (
	"fmt"

	"github.com/fwojciec/roster"
)

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if err := deps.Storage.Remove(deps.Ctx, roster.DataKey); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", roster.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Cleared collected people.")
	return nil
}
