package cache

import (
	"fmt"
	"net/url"
	"testing"
	"time"
)

// fakeClock lets tests move time without sleeping
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCache(ttl time.Duration, capacity int) (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	return newWithClock(ttl, capacity, clock), clock
}

func TestCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(DefaultTTL, DefaultCapacity)

	c.Set("/api/shifts", "value1")

	val, found := c.Get("/api/shifts")
	if !found {
		t.Error("Expected to find /api/shifts")
	}
	if val != "value1" {
		t.Errorf("Expected value1, got %v", val)
	}
}

func TestCache_TTLBoundaries(t *testing.T) {
	c, clock := newTestCache(DefaultTTL, DefaultCapacity)

	c.Set("/api/shifts", "value1")

	clock.advance(299999 * time.Millisecond)
	if _, found := c.Get("/api/shifts"); !found {
		t.Error("Expected hit at 299999ms")
	}

	c.Set("/api/progress", "value2")
	clock.advance(300000 * time.Millisecond)
	if _, found := c.Get("/api/progress"); found {
		t.Error("Expected miss at exactly 300000ms")
	}

	c.Set("/api/carers", "value3")
	clock.advance(300001 * time.Millisecond)
	if _, found := c.Get("/api/carers"); found {
		t.Error("Expected miss at 300001ms")
	}
}

func TestCache_BypassPrefixesNeverHit(t *testing.T) {
	c, _ := newTestCache(DefaultTTL, DefaultCapacity)

	bypassed := []string{
		"/api/auth/verify",
		"/api/users?page=1",
		"/api/care-packages",
		"/api/tasks?status=pending",
		"/api/assessments",
		"/api/recycle-bin",
	}
	for _, key := range bypassed {
		c.Set(key, "stale")
		if _, found := c.Get(key); found {
			t.Errorf("Expected bypass miss for %s", key)
		}
	}

	if c.Len() != 0 {
		t.Errorf("Expected bypassed keys not to be stored, got %d entries", c.Len())
	}
}

func TestCache_FIFOEvictionAtCapacity(t *testing.T) {
	c, clock := newTestCache(DefaultTTL, 100)

	for i := 0; i < 100; i++ {
		c.Set(fmt.Sprintf("/api/shifts/%d", i), i)
		clock.advance(time.Millisecond)
	}

	// Read the oldest entry; FIFO eviction must ignore access order
	if _, found := c.Get("/api/shifts/0"); !found {
		t.Fatal("Expected /api/shifts/0 to be present before eviction")
	}

	c.Set("/api/shifts/100", 100)

	if c.Len() != 100 {
		t.Errorf("Expected 100 entries after eviction, got %d", c.Len())
	}
	if _, found := c.Get("/api/shifts/0"); found {
		t.Error("Expected oldest entry /api/shifts/0 to be evicted")
	}
	if _, found := c.Get("/api/shifts/1"); !found {
		t.Error("Expected /api/shifts/1 to survive")
	}
	if _, found := c.Get("/api/shifts/100"); !found {
		t.Error("Expected newest entry /api/shifts/100 to be present")
	}
}

func TestCache_InvalidateByPrefix(t *testing.T) {
	c, _ := newTestCache(DefaultTTL, DefaultCapacity)

	c.Set("/api/shifts", "list")
	c.Set("/api/shifts?week=34", "filtered")
	c.Set("/api/progress", "other")

	c.Invalidate("/api/shifts")

	if _, found := c.Get("/api/shifts"); found {
		t.Error("Expected /api/shifts to be invalidated")
	}
	if _, found := c.Get("/api/shifts?week=34"); found {
		t.Error("Expected /api/shifts?week=34 to be invalidated")
	}
	if _, found := c.Get("/api/progress"); !found {
		t.Error("Expected /api/progress to survive")
	}
}

func TestCache_SweepRemovesExpired(t *testing.T) {
	c, clock := newTestCache(DefaultTTL, DefaultCapacity)

	c.Set("/api/shifts", "old")
	clock.advance(DefaultTTL)
	c.Set("/api/progress", "fresh")

	c.sweepOnce()

	if c.Len() != 1 {
		t.Errorf("Expected 1 entry after sweep, got %d", c.Len())
	}
	if _, found := c.Get("/api/progress"); !found {
		t.Error("Expected fresh entry to survive sweep")
	}
}

func TestCache_Clear(t *testing.T) {
	c, _ := newTestCache(DefaultTTL, DefaultCapacity)

	c.Set("/api/shifts", "value1")
	c.Clear()

	if _, found := c.Get("/api/shifts"); found {
		t.Error("Expected /api/shifts to be cleared")
	}
}

func TestKey_CanonicalParamOrder(t *testing.T) {
	a := url.Values{}
	a.Set("page", "2")
	a.Set("status", "pending")

	b := url.Values{}
	b.Set("status", "pending")
	b.Set("page", "2")

	if Key("/api/shifts", a) != Key("/api/shifts", b) {
		t.Errorf("Expected identical keys, got %q and %q", Key("/api/shifts", a), Key("/api/shifts", b))
	}
}

func TestKey_NoParams(t *testing.T) {
	if got := Key("/api/shifts", nil); got != "/api/shifts" {
		t.Errorf("Expected bare path, got %q", got)
	}
}
