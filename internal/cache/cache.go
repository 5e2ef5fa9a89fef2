// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package cache provides the serialized-spot result cache.
//
// Each entry binds a spot's rendered JSON body to the version token it was
// rendered from. Reads present the spot's current token; a token mismatch is
// a miss, so a stale body can never be served regardless of TTL.
package cache

import (
	"sync"
	"time"
)

// Entry holds one rendered representation with its version token.
type Entry struct {
	Body      []byte
	Token     string
	ExpiresAt time.Time
}

// ResultCache is a thread-safe in-memory cache of serialized spots keyed by
// spot id, with TTL expiration on top of token coherence.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	stats   Stats
}

// Stats tracks cache performance counters.
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a result cache whose entries expire after ttl. A background
// goroutine sweeps expired entries every cleanupInterval for the life of
// the process; pass 0 to disable the sweeper (tests).
func New(ttl, cleanupInterval time.Duration) *ResultCache {
	c := &ResultCache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		stats: Stats{
			LastCleanup: time.Now(),
		},
	}
	if cleanupInterval > 0 {
		go c.cleanupLoop(cleanupInterval)
	}
	return c
}

// Get returns the cached body for a spot if it is present, unexpired, and
// was rendered from currentToken. Any other outcome is a miss; an entry
// carrying a superseded token is removed on sight.
func (c *ResultCache) Get(id, currentToken string) ([]byte, bool) {
	c.mu.RLock()
	entry, exists := c.entries[id]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if entry.Token != currentToken || time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a fresh Put may have raced in.
		if cur, ok := c.entries[id]; ok && cur.Token == entry.Token {
			delete(c.entries, id)
			c.recordEviction()
		}
		c.mu.Unlock()
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return entry.Body, true
}

// Put stores a rendered body under the token it was rendered from.
func (c *ResultCache) Put(id, token string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = Entry{
		Body:      body,
		Token:     token,
		ExpiresAt: time.Now().Add(c.ttl),
	}

	c.stats.mu.Lock()
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.mu.Unlock()
}

// Evict removes a spot's entry. Callers invoke it on every successful
// mutation; evicting a missing key is a no-op.
func (c *ResultCache) Evict(id string) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()

	c.recordEviction()
}

// Clear drops every entry in one atomic swap.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = 0
	c.stats.mu.Unlock()
}

// GetStats returns a snapshot of the counters.
func (c *ResultCache) GetStats() Stats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Stats{
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Evictions:   c.stats.Evictions,
		TotalKeys:   c.stats.TotalKeys,
		LastCleanup: c.stats.LastCleanup,
	}
}

// HitRate returns the hit rate as a percentage.
func (c *ResultCache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (c *ResultCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

// cleanup removes all expired entries.
func (c *ResultCache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	evictions := int64(0)
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}

	c.stats.mu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.LastCleanup = now
	c.stats.mu.Unlock()
}

func (c *ResultCache) recordHit() {
	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
}

func (c *ResultCache) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
}

func (c *ResultCache) recordEviction() {
	c.stats.mu.Lock()
	c.stats.Evictions++
	c.stats.mu.Unlock()
}
