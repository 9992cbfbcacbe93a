// Package bloom provides a probabilistic membership pre-filter for person
// dedup keys.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter answers "definitely new" or "possibly seen" for dedup keys.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected keys at the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records key.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// MaybeSeen reports whether key might have been added.
// A false result is exact.
func (f *Filter) MaybeSeen(key string) bool {
	return f.f.TestString(key)
}

// Reset forgets every key.
func (f *Filter) Reset() {
	f.f.ClearAll()
}

// EstimatedCount returns the approximate number of distinct keys added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
