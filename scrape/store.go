package scrape

import (
	"github.com/fwojciec/roster"
	"github.com/fwojciec/roster/bloom"
)

// Store is an insertion-ordered set of people keyed by roster.Person.Key.
// The first record seen for a key wins. A Bloom filter sits in front of the
// key index so most new keys skip the map lookup.
//
// Store is not safe for concurrent use.
type Store struct {
	seen   *bloom.Filter
	index  map[string]struct{}
	people []roster.Person
}

// NewStore creates a Store sized for n expected people with the given
// false positive rate for the pre-filter.
func NewStore(n uint, fpRate float64) *Store {
	return &Store{
		seen:  bloom.NewFilter(n, fpRate),
		index: make(map[string]struct{}),
	}
}

// InsertIfNew adds p unless its name is invalid or its key is already
// present. It reports whether p was added.
func (s *Store) InsertIfNew(p roster.Person) bool {
	if !roster.ValidName(p.Name) {
		return false
	}

	key := p.Key()
	if s.seen.MaybeSeen(key) {
		if _, ok := s.index[key]; ok {
			return false
		}
	}

	s.seen.Add(key)
	s.index[key] = struct{}{}
	s.people = append(s.people, p)
	return true
}

// Snapshot returns a copy of the stored people in insertion order.
func (s *Store) Snapshot() []roster.Person {
	out := make([]roster.Person, len(s.people))
	copy(out, s.people)
	return out
}

// Len returns the number of stored people.
func (s *Store) Len() int {
	return len(s.people)
}

// Clear removes every person.
func (s *Store) Clear() {
	s.seen.Reset()
	clear(s.index)
	s.people = nil
}
