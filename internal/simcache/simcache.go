// Package simcache memoizes symbol-pair similarities for the lifetime of a
// process run.
//
// Keys are unordered pairs: (a, b) and (b, a) share one entry. Entries are only
// ever added, never evicted.
package simcache

import (
	"sync"
	"sync/atomic"
)

// Pair is a canonical unordered symbol pair with A <= B.
type Pair struct {
	A, B string
}

// MakePair orders a and b.
func MakePair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// ComputeFunc produces the similarity for a canonical pair.
type ComputeFunc func(a, b string) float64

// Stats reports cache effectiveness.
type Stats struct {
	Entries      int
	Hits         uint64
	Computations uint64
}

// Cache is safe for concurrent use by several scoring workers.
type Cache struct {
	mu     sync.RWMutex
	byPair map[Pair]float64

	hits     atomic.Uint64
	computed atomic.Uint64
}

// New creates a Cache with the given capacity hint.
func New(capHint int) *Cache {
	return &Cache{byPair: make(map[Pair]float64, capHint)}
}

// Get returns the stored value for the pair, if any.
func (c *Cache) Get(a, b string) (float64, bool) {
	c.mu.RLock()
	v, ok := c.byPair[MakePair(a, b)]
	c.mu.RUnlock()
	return v, ok
}

// Similarity returns the memoized value for (a, b), calling compute with the
// canonical ordering on a miss. If two workers race on the same miss, the
// first stored value wins and both callers observe it.
func (c *Cache) Similarity(a, b string, compute ComputeFunc) float64 {
	if v, ok := c.Get(a, b); ok {
		c.hits.Add(1)
		return v
	}

	key := MakePair(a, b)
	v := compute(key.A, key.B)
	c.computed.Add(1)

	c.mu.Lock()
	if prev, ok := c.byPair[key]; ok {
		v = prev
	} else {
		c.byPair[key] = v
	}
	c.mu.Unlock()
	return v
}

// Len is the number of stored pairs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byPair)
}

func (c *Cache) Stats() Stats {
	return Stats{
		Entries:      c.Len(),
		Hits:         c.hits.Load(),
		Computations: c.computed.Load(),
	}
}
