// ABOUTME: In-memory response cache with TTL expiration and FIFO capacity eviction
// ABOUTME: Supports prefix-based invalidation and an always-bypass list for fresh endpoints

package cache

import (
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTTL is how long an entry counts as a hit after it is stored.
	DefaultTTL = 5 * time.Minute
	// DefaultCapacity bounds the number of live entries.
	DefaultCapacity = 100

	sweepInterval = time.Minute
)

// NeverCache lists URL prefixes that are always served fresh. These endpoints
// went stale in practice: a cached hit could show a deleted record or an
// out-of-date auth state.
var NeverCache = []string{
	"/api/auth/verify",
	"/api/users",
	"/api/care-packages",
	"/api/tasks",
	"/api/assessments",
	"/api/recycle-bin",
}

// Clock abstracts time.Now so expiry boundaries can be tested without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type entry struct {
	data     any
	storedAt time.Time
}

// Cache is a keyed response cache. Eviction at capacity is FIFO on insertion
// order, not LRU: reads do not refresh an entry's position.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	order    []string // insertion order, oldest first
	ttl      time.Duration
	capacity int
	bypass   []string
	clock    Clock
	done     chan struct{}
}

// New creates a cache with a background sweep that removes expired entries.
// Call Close to stop the sweep goroutine.
func New(ttl time.Duration, capacity int) *Cache {
	c := newWithClock(ttl, capacity, systemClock{})
	go c.startSweep()
	return c
}

// newWithClock builds a cache without the sweep goroutine. Tests use it with
// a fake clock and call sweepOnce directly.
func newWithClock(ttl time.Duration, capacity int, clock Clock) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		entries:  make(map[string]entry),
		ttl:      ttl,
		capacity: capacity,
		bypass:   NeverCache,
		clock:    clock,
		done:     make(chan struct{}),
	}
}

// Key builds the cache key from a URL path and its query parameters.
// Parameters are serialized in sorted order so equivalent requests share a key.
func Key(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(path)
	b.WriteByte('?')
	for i, k := range keys {
		vals := append([]string(nil), params[k]...)
		sort.Strings(vals)
		for j, v := range vals {
			if i > 0 || j > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// Bypassed reports whether the key matches an always-fresh prefix.
func (c *Cache) Bypassed(key string) bool {
	for _, prefix := range c.bypass {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// Get returns the stored value if it is present, fresh, and not bypassed.
// An entry older than the TTL is removed on access.
func (c *Cache) Get(key string) (any, bool) {
	if c.Bypassed(key) {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return nil, false
	}
	if c.clock.Now().Sub(e.storedAt) >= c.ttl {
		c.remove(key)
		slog.Debug("Cache expired", "key", key)
		return nil, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

// Set stores a value. Bypassed keys are never stored. Inserting beyond
// capacity evicts the oldest-inserted entry.
func (c *Cache) Set(key string, value any) {
	if c.Bypassed(key) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.capacity {
			oldest := c.order[0]
			c.remove(oldest)
			slog.Debug("Cache evicted", "key", oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = entry{data: value, storedAt: c.clock.Now()}
	slog.Debug("Cache set", "key", key)
}

// Invalidate removes every entry whose key starts with the given prefix.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.remove(key)
			removed++
		}
	}
	if removed > 0 {
		slog.Debug("Cache invalidated", "prefix", prefix, "removed", removed)
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	c.order = nil
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops the background sweep.
func (c *Cache) Close() {
	close(c.done)
}

// remove deletes an entry and its position in the insertion order.
// Caller must hold the lock.
func (c *Cache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cache) startSweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweepOnce()
		}
	}
}

// sweepOnce removes all expired entries regardless of access pattern.
func (c *Cache) sweepOnce() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	for key, e := range c.entries {
		if now.Sub(e.storedAt) >= c.ttl {
			c.remove(key)
		}
	}
}
