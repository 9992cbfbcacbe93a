package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/roster"
)

// Run executes the sessions command.
func (c *SessionsCmd) Run(deps *Dependencies) error {
	filter := roster.SessionFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	sessions, err := deps.Sessions.FindSessions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", roster.ErrorMessage(err))
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(deps.Stdout, "No sessions found. Use 'roster watch' to start one.")
		return nil
	}

	for _, s := range sessions {
		stopped := "running"
		if !s.StoppedAt.IsZero() {
			stopped = s.StoppedAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d  %s\n",
			s.ID, s.StartedAt.Local().Format(time.DateTime), stopped, s.Count, s.URL)
	}

	return nil
}
