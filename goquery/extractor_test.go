package goquery_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/roster"
	"github.com/fwojciec/roster/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peoplePage = `<!DOCTYPE html>
<html>
<body>
<main>
<ul class="scaffold-finite-scroll__content">
	<li class="org-people-profile-card">
		<div class="artdeco-entity-lockup__title">
			<a href="/in/ada-lovelace?miniProfileUrn=urn%3Ali%3A1">  Ada   Lovelace, PhD </a>
		</div>
		<div class="artdeco-entity-lockup__subtitle">
			Head of
			Analytical Engines
		</div>
	</li>
	<li class="org-people-profile-card">
		<div class="artdeco-entity-lockup__title">Grace Hopper 🚀</div>
	</li>
	<li class="org-people-profile-card">
		<div class="artdeco-entity-lockup__title"><a href="/in/member">LinkedIn Member</a></div>
	</li>
	<li class="org-people-profile-card">
		<div class="artdeco-entity-lockup__title"><a href="/in/pat">Pat M.</a></div>
	</li>
</ul>
</main>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts valid people in document order", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(nil)

		result, err := e.Extract(&roster.Snapshot{URL: "https://www.linkedin.com/company/acme/people/", HTML: peoplePage})

		require.NoError(t, err)
		assert.Equal(t, 4, result.Cards)
		assert.Equal(t, ".org-people-profile-card", result.Selector)
		assert.Empty(t, result.Errors)
		require.Len(t, result.People, 2)

		assert.Equal(t, roster.Person{
			Name:       "Ada Lovelace",
			Position:   "Head of Analytical Engines",
			ProfileURL: "https://www.linkedin.com/in/ada-lovelace",
		}, result.People[0])
		assert.Equal(t, roster.Person{Name: "Grace Hopper"}, result.People[1])
	})

	t.Run("falls back to the second card selector without merging", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<ul class="scaffold-finite-scroll__content">
	<li><a data-anonymize="person-name" href="https://www.linkedin.com/in/alan">Alan Turing</a></li>
	<li><span>not a person</span></li>
</ul>
</body></html>`

		result, err := goquery.NewExtractor(nil).Extract(&roster.Snapshot{URL: "https://www.linkedin.com/company/acme/people/", HTML: html})

		require.NoError(t, err)
		assert.Equal(t, ".scaffold-finite-scroll__content li", result.Selector)
		assert.Equal(t, 2, result.Cards)
		require.Len(t, result.People, 1)
		assert.Equal(t, "Alan Turing", result.People[0].Name)
		assert.Equal(t, "https://www.linkedin.com/in/alan", result.People[0].ProfileURL)
	})

	t.Run("prefers the first name selector with a hit", func(t *testing.T) {
		t.Parallel()

		html := `<div class="org-people-profile-card">
	<a data-anonymize="person-name">Wrong Choice</a>
	<div class="artdeco-entity-lockup__title"><a>Right Choice</a></div>
</div>`

		result, err := goquery.NewExtractor(nil).Extract(&roster.Snapshot{HTML: html})

		require.NoError(t, err)
		require.Len(t, result.People, 1)
		assert.Equal(t, "Right Choice", result.People[0].Name)
	})

	t.Run("returns empty result when no card selector matches", func(t *testing.T) {
		t.Parallel()

		result, err := goquery.NewExtractor(nil).Extract(&roster.Snapshot{HTML: "<html><body><p>nothing</p></body></html>"})

		require.NoError(t, err)
		assert.Zero(t, result.Cards)
		assert.Empty(t, result.Selector)
		assert.Empty(t, result.People)
	})

	t.Run("isolates a card with an unparsable profile link", func(t *testing.T) {
		t.Parallel()

		html := `<ul>
<li class="org-people-profile-card"><div class="artdeco-entity-lockup__title"><a href="/in/bad%zz">Broken Link</a></div></li>
<li class="org-people-profile-card"><div class="artdeco-entity-lockup__title"><a href="/in/ok">Fine Person</a></div></li>
</ul>`

		result, err := goquery.NewExtractor(nil).Extract(&roster.Snapshot{URL: "https://www.linkedin.com/", HTML: html})

		require.NoError(t, err)
		require.Len(t, result.Errors, 1)
		var elErr *roster.ElementError
		require.True(t, errors.As(result.Errors[0], &elErr))
		assert.Equal(t, 0, elErr.Index)
		require.Len(t, result.People, 1)
		assert.Equal(t, "Fine Person", result.People[0].Name)
	})

	t.Run("rejects an invalid document URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor(nil).Extract(&roster.Snapshot{URL: "http://[::1", HTML: peoplePage})

		assert.Equal(t, roster.EINVALID, roster.ErrorCode(err))
	})

	t.Run("rejects a nil snapshot", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor(nil).Extract(nil)

		assert.Equal(t, roster.EINVALID, roster.ErrorCode(err))
	})

	t.Run("uses the strategy registered for the host", func(t *testing.T) {
		t.Parallel()

		reg := goquery.NewRegistry(goquery.DefaultStrategy())
		reg.Register("people.example.com", goquery.Strategy{
			CardSelectors: []string{".person"},
			NameSelectors: []string{".name"},
			ProfileMarker: "/profile/",
		})

		html := `<div class="person"><span class="name">Katherine Johnson</span>
<div class="artdeco-entity-lockup__subtitle">Mathematician</div>
<a href="/profile/kj?ref=1">profile</a></div>`

		result, err := goquery.NewExtractor(reg).Extract(&roster.Snapshot{URL: "https://people.example.com/team", HTML: html})

		require.NoError(t, err)
		require.Len(t, result.People, 1)
		assert.Equal(t, roster.Person{
			Name:       "Katherine Johnson",
			Position:   "Mathematician",
			ProfileURL: "https://people.example.com/profile/kj",
		}, result.People[0])
	})
}
