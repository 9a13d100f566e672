package content

import (
	"sort"
	"sync"
	"time"
)

// DefaultTTL is the freshness window for cached collection scans.
const DefaultTTL = time.Hour

// Cache memoizes full collection scans per Kind for a freshness window.
// Entries carry the kind's tag; Invalidate drops every entry with that tag.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[Kind]cacheEntry
	gens    map[string]uint64
}

type cacheEntry struct {
	value  any
	stored time.Time
	tag    string
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a Cache whose entries stay fresh for ttl.
func NewCache(ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[Kind]cacheEntry),
		gens:    make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) fresh(e cacheEntry) bool {
	return c.now().Sub(e.stored) < c.ttl
}

// Get returns the cached value for kind if it is still fresh.
func (c *Cache) Get(kind Kind) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[kind]
	if !ok || !c.fresh(e) {
		return nil, false
	}
	return e.value, true
}

// Set stores value for kind, stamped with the current time and kind's tag.
func (c *Cache) Set(kind Kind, value any) {
	c.mu.Lock()
	c.entries[kind] = cacheEntry{value: value, stored: c.now(), tag: kind.Tag()}
	c.mu.Unlock()
}

// Generation returns the invalidation counter for tag.
func (c *Cache) Generation(tag string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[tag]
}

// SetIfCurrent stores value only if kind's tag has not been invalidated since
// gen was read. It reports whether the value was stored.
func (c *Cache) SetIfCurrent(kind Kind, value any, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[kind.Tag()] != gen {
		return false
	}
	c.entries[kind] = cacheEntry{value: value, stored: c.now(), tag: kind.Tag()}
	return true
}

// Invalidate drops every entry stamped with tag and returns how many were removed.
func (c *Cache) Invalidate(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[tag]++
	n := 0
	for k, e := range c.entries {
		if e.tag == tag {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// CacheStatus describes one cache entry for diagnostics pages.
type CacheStatus struct {
	Kind    Kind
	Tag     string
	Stored  time.Time
	Expires time.Time
	Fresh   bool
}

// Status lists the current entries ordered by kind.
func (c *Cache) Status() []CacheStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]CacheStatus, 0, len(c.entries))
	for k, e := range c.entries {
		out = append(out, CacheStatus{
			Kind:    k,
			Tag:     e.tag,
			Stored:  e.stored,
			Expires: e.stored.Add(c.ttl),
			Fresh:   c.fresh(e),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}
