// Package cache holds the process-local map of already-cracked hashes,
// shared across every Scheduler in the run (spec section 4.2).
package cache

import (
	"strings"
	"sync"
)

// Cache is a concurrency-safe hash -> plaintext map. Keys are case-folded on
// every read and write. Entries never expire during a run and there is no
// eviction. NOT_FOUND verdicts are never cached — see JobManager/Scheduler.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// New constructs an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// Get returns the cached plaintext for hash, or "" and false if absent.
func (c *Cache) Get(hash string) (string, bool) {
	key := strings.ToLower(hash)
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[key]
	return p, ok
}

// Put stores plaintext for hash, case-folding the key.
func (c *Cache) Put(hash, plaintext string) {
	key := strings.ToLower(hash)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = plaintext
}

// Clear drops all entries. Called once at driver start to guarantee a run
// never observes stale state from a previous invocation of the process.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
}
