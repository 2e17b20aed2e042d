package feiertage

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"weak"
)

type cacheKey struct {
	year   int
	region Region
}

// Cache memoizes the holiday set per year and region. Entries are held
// weakly: once no caller references a Set anymore the garbage collector may
// reclaim it, and the next query recomputes it. A Cache is safe for
// concurrent use. Concurrent first queries for the same key may compute the
// set more than once, but all of them see equal results.
type Cache struct {
	loc *time.Location

	mu      sync.Mutex
	entries map[cacheKey]weak.Pointer[Set]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithLocation sets the time zone used to map instants to calendar dates.
// The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *Cache) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// NewCache returns an empty cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		loc:     time.Local,
		entries: make(map[cacheKey]weak.Pointer[Set]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Location returns the time zone instants are normalized to.
func (c *Cache) Location() *time.Location {
	return c.loc
}

// Holidays returns the holiday set of region r in year, computing it on
// first use.
func (c *Cache) Holidays(year int, r Region) *Set {
	mustValid(r)
	key := cacheKey{year: year, region: r}
	if s := c.lookup(key); s != nil {
		c.hits.Add(1)
		return s
	}
	c.misses.Add(1)
	s := Compute(year, r)

	c.mu.Lock()
	defer c.mu.Unlock()
	if wp, ok := c.entries[key]; ok {
		// Another goroutine stored the set while we were computing.
		if cur := wp.Value(); cur != nil {
			return cur
		}
	}
	wp := weak.Make(s)
	c.entries[key] = wp
	runtime.AddCleanup(s, c.evict, evictArg{key: key, wp: wp})
	return s
}

func (c *Cache) lookup(key cacheKey) *Set {
	c.mu.Lock()
	wp, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return nil
	}
	return wp.Value()
}

type evictArg struct {
	key cacheKey
	wp  weak.Pointer[Set]
}

// evict runs after a cached set has been reclaimed. The entry is only
// removed if it still refers to the reclaimed set.
func (c *Cache) evict(a evictArg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.entries[a.key]; ok && cur == a.wp {
		delete(c.entries, a.key)
	}
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, wp := range c.entries {
		if wp.Value() != nil {
			n++
		}
	}
	return n
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

// Purge drops all entries. Sets already handed out stay valid.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.entries = make(map[cacheKey]weak.Pointer[Set])
	c.mu.Unlock()
}
