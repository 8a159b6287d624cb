// Package cache memoizes the diagnostic zone-file-ish rendering of
// already-decoded packets, keyed by a digest of their raw wire bytes. It
// is an ambient logging-path optimization, NOT a DNS answer cache — the
// packet library itself does no resolution caching (spec.md §9
// Non-goals). Adapted from the teacher repo's LRU-backed record cache
// (internal/dns/infra/memcache), repurposed from resource records to
// rendered strings.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// RenderCache memoizes String() output for packets a caller re-dumps
// repeatedly (e.g. a busy server logging every truncation decision).
type RenderCache struct {
	lru *lru.Cache[[32]byte, string]
}

// New returns a RenderCache holding up to size entries.
func New(size int) (*RenderCache, error) {
	c, err := lru.New[[32]byte, string](size)
	if err != nil {
		return nil, err
	}
	return &RenderCache{lru: c}, nil
}

// Get returns the memoized rendering for digest, if present.
func (c *RenderCache) Get(digest [32]byte) (string, bool) {
	return c.lru.Get(digest)
}

// Set stores the rendering for digest, evicting the least-recently-used
// entry if the cache is full.
func (c *RenderCache) Set(digest [32]byte, rendered string) {
	c.lru.Add(digest, rendered)
}

// Len returns the number of entries currently cached.
func (c *RenderCache) Len() int {
	return c.lru.Len()
}
