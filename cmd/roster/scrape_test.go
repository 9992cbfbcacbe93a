package main_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/roster"
	main "github.com/fwojciec/roster/cmd/roster"
	"github.com/fwojciec/roster/fs"
	"github.com/fwojciec/roster/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// browser is a Browser serving a single page.
type browser struct {
	page *main.Page
	urls []string
}

func (b *browser) Open(_ context.Context, url string) (*main.Page, error) {
	b.urls = append(b.urls, url)
	if b.page == nil {
		return nil, roster.Errorf(roster.EINVALID, "cannot open %s", url)
	}
	return b.page, nil
}

func staticDocument(html string) *mock.Document {
	return &mock.Document{
		SnapshotFn: func(context.Context) (*roster.Snapshot, error) {
			return &roster.Snapshot{URL: "https://www.linkedin.com/company/acme/people/", HTML: html}, nil
		},
	}
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts people from a saved file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "people.html")
		require.NoError(t, os.WriteFile(path, []byte(peoplePage), 0o600))

		deps, stdout, _ := newDeps()
		deps.Storage = storeWith(t)

		cmd := &main.ScrapeCmd{Target: path, BaseURL: "https://www.linkedin.com/"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Container: .scaffold-finite-scroll__content")
		assert.Contains(t, output, `Load more: "Show more results"`)
		assert.Contains(t, output, "Found 2 people")
		assert.Contains(t, output, "Ada Lovelace  Engineer")

		data, err := deps.Storage.Get(context.Background(), roster.DataKey)
		require.NoError(t, err)
		people, err := roster.DecodePeople(data)
		require.NoError(t, err)
		require.Len(t, people, 2)
		assert.Equal(t, "https://www.linkedin.com/in/ada-lovelace", people[0].ProfileURL)
	})

	t.Run("resolves links against the saved source URL", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "people.html")
		saved := fs.FormatSnapshot(&roster.Snapshot{URL: "https://people.example.com/team/", HTML: peoplePage})
		require.NoError(t, os.WriteFile(path, []byte(saved), 0o600))

		deps, _, _ := newDeps()
		deps.Storage = storeWith(t)

		err := (&main.ScrapeCmd{Target: path, BaseURL: "https://www.linkedin.com/"}).Run(deps)

		require.NoError(t, err)
		data, err := deps.Storage.Get(context.Background(), roster.DataKey)
		require.NoError(t, err)
		people, err := roster.DecodePeople(data)
		require.NoError(t, err)
		require.NotEmpty(t, people)
		assert.Equal(t, "https://people.example.com/in/ada-lovelace", people[0].ProfileURL)
	})

	t.Run("extracts people from a live page", func(t *testing.T) {
		t.Parallel()

		b := &browser{page: &main.Page{Document: staticDocument(peoplePage)}}
		deps, stdout, _ := newDeps()
		deps.Storage = storeWith(t)
		deps.Browser = b

		cmd := &main.ScrapeCmd{Target: "https://www.linkedin.com/company/acme/people/"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://www.linkedin.com/company/acme/people/"}, b.urls)
		assert.Contains(t, stdout.String(), "Found 2 people")
		assert.NotContains(t, stdout.String(), "Container:")
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Storage = storeWith(t)

		cmd := &main.ScrapeCmd{Target: filepath.Join(t.TempDir(), "missing.html")}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
