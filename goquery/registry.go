package goquery

import (
	"net/url"
	"strings"
)

// Registry maps document hosts to extraction strategies, falling back to a
// default strategy for unknown hosts.
type Registry struct {
	fallback   Strategy
	strategies map[string]Strategy
}

// NewRegistry creates a Registry that uses fallback for unregistered hosts.
func NewRegistry(fallback Strategy) *Registry {
	return &Registry{
		fallback:   fallback,
		strategies: make(map[string]Strategy),
	}
}

// Register sets the strategy for host. Empty fields are taken from the
// fallback strategy. A leading "www." is ignored.
func (r *Registry) Register(host string, s Strategy) {
	r.strategies[normalizeHost(host)] = s.Merge(r.fallback)
}

// ForURL returns the strategy for the host of rawURL.
func (r *Registry) ForURL(rawURL string) Strategy {
	u, err := url.Parse(rawURL)
	if err != nil {
		return r.fallback
	}
	if s, ok := r.strategies[normalizeHost(u.Hostname())]; ok {
		return s
	}
	return r.fallback
}

// Hosts returns the registered hosts.
func (r *Registry) Hosts() []string {
	hosts := make([]string, 0, len(r.strategies))
	for h := range r.strategies {
		hosts = append(hosts, h)
	}
	return hosts
}

func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
