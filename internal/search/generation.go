package search

import "go.uber.org/atomic"

// Generation hands out increasing tokens. A token is stale as soon as a newer
// one has been issued.
type Generation struct {
	n atomic.Uint64
}

func (g *Generation) Next() uint64 {
	return g.n.Inc()
}

func (g *Generation) Current() uint64 {
	return g.n.Load()
}

func (g *Generation) IsCurrent(token uint64) bool {
	return g.n.Load() == token
}
