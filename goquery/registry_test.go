package goquery_test

import (
	"testing"

	"github.com/fwojciec/roster/goquery"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_ForURL(t *testing.T) {
	t.Parallel()

	custom := goquery.Strategy{CardSelectors: []string{".person"}}

	reg := goquery.NewRegistry(goquery.DefaultStrategy())
	reg.Register("WWW.Example.com", custom)

	t.Run("returns registered strategy ignoring www and case", func(t *testing.T) {
		t.Parallel()

		s := reg.ForURL("https://example.com/team")

		assert.Equal(t, []string{".person"}, s.CardSelectors)
	})

	t.Run("fills missing fields from fallback", func(t *testing.T) {
		t.Parallel()

		s := reg.ForURL("https://www.example.com/team")

		assert.Equal(t, goquery.DefaultStrategy().NameSelectors, s.NameSelectors)
		assert.Equal(t, "/in/", s.ProfileMarker)
	})

	t.Run("falls back for unknown host", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, goquery.DefaultStrategy(), reg.ForURL("https://www.linkedin.com/company/acme/people/"))
	})

	t.Run("falls back for unparsable URL", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, goquery.DefaultStrategy(), reg.ForURL("http://[::1"))
	})

	t.Run("lists hosts", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"example.com"}, reg.Hosts())
	})
}
