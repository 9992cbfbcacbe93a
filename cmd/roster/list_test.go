package main_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/roster"
	main "github.com/fwojciec/roster/cmd/roster"
	"github.com/fwojciec/roster/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	people := []roster.Person{
		{Name: "Ada Lovelace", Position: "Engineer", ProfileURL: "https://www.linkedin.com/in/ada"},
		{Name: "Alan Turing"},
		{Name: "Grace Hopper", Position: "Admiral"},
	}

	t.Run("lists people with preview limit", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Storage = storeWith(t, people...)

		cmd := &main.ListCmd{Limit: 2}

		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "3 people collected")
		assert.Contains(t, output, "Ada Lovelace  Engineer")
		assert.Contains(t, output, "Alan Turing  N/A")
		assert.NotContains(t, output, "Grace Hopper")
		assert.Contains(t, output, "... and 1 more")
	})

	t.Run("renders markdown table", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Storage = storeWith(t, people...)

		cmd := &main.ListCmd{Markdown: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "# People")
		assert.Contains(t, stdout.String(), "Grace Hopper")
	})

	t.Run("shows helpful message when nothing is collected", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Storage = storeWith(t)

		cmd := &main.ListCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No people collected")
	})

	t.Run("returns error when storage fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")

		deps, _, stderr := newDeps()
		deps.Storage = &mock.KeyValueStore{
			GetFn: func(context.Context, string) ([]byte, error) { return nil, dbErr },
		}

		cmd := &main.ListCmd{}

		err := cmd.Run(deps)

		require.ErrorIs(t, err, dbErr)
		assert.Contains(t, stderr.String(), "error:")
	})
}
