// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache provides the time-windowed, single-flight cache that bounds
// how often adapters hit rate-limited upstreams.
//
// A cache entry lives for exactly one refresh window. Within a window,
// concurrent callers for the same key share one in-flight computation; once
// the window passes, the entry is never served again and is evicted on the
// next access. This is the engine's only shared mutable state.
package cache

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Windowed maps (key, window) to one computed value per window.
type Windowed struct {
	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
}

type entry struct {
	window int64
	value  any
}

// New returns an empty windowed cache.
func New() *Windowed {
	return &Windowed{entries: make(map[string]entry)}
}

// GetOrCompute returns the value cached for (key, window), computing it via
// fn on a miss. Concurrent callers with the same key and window share a
// single execution of fn. A failed computation caches nothing, so the next
// caller in the same window recomputes.
//
// Entries from windows older than window are evicted opportunistically on
// every call, which keeps memory bounded across arbitrarily many windows.
func (c *Windowed) GetOrCompute(key string, window int64, fn func() (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.window == window {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	flightKey := fmt.Sprintf("%s@%d", key, window)
	v, err, _ := c.group.Do(flightKey, func() (any, error) {
		// Re-check under the lock: another flight for the same window may
		// have stored the value between our miss and this execution.
		c.mu.Lock()
		if e, ok := c.entries[key]; ok && e.window == window {
			c.mu.Unlock()
			return e.value, nil
		}
		c.mu.Unlock()

		value, err := fn()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry{window: window, value: value}
		c.evictLocked(window)
		c.mu.Unlock()
		return value, nil
	})
	return v, err
}

// Get returns the value cached for (key, window), if any. Entries from other
// windows are never returned.
func (c *Windowed) Get(key string, window int64) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.window != window {
		return nil, false
	}
	return e.value, true
}

// Evict removes every entry whose window is strictly older than current.
func (c *Windowed) Evict(current int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked(current)
}

func (c *Windowed) evictLocked(current int64) {
	for k, e := range c.entries {
		if e.window < current {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of live entries.
func (c *Windowed) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
