package cache

import (
	"testing"
	"time"

	"fintrack/internal/log"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func newTestCache(size int, ttl time.Duration) (*LRUCache[int], *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[int](size, ttl)
	c.now = clock.now
	return c, clock
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Error("a should survive as most recently used")
	}
	if c.Size() != 2 {
		t.Errorf("size = %d", c.Size())
	}
}

func TestLRUExpiry(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	clock.t = clock.t.Add(30 * time.Second)
	c.Set("b", 3) // refreshes b's expiry

	clock.t = clock.t.Add(45 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("a should have expired")
	}
	if v, ok := c.Get("b"); !ok || v != 3 {
		t.Errorf("b = %d, %v", v, ok)
	}

	clock.t = clock.t.Add(time.Hour)
	if n := c.CleanExpired(); n != 1 {
		t.Errorf("CleanExpired() = %d, want 1", n)
	}
}

func TestLRUZeroTTLNeverExpires(t *testing.T) {
	c, clock := newTestCache(10, 0)
	c.Set("a", 1)
	clock.t = clock.t.Add(1000 * time.Hour)
	if _, ok := c.Get("a"); !ok {
		t.Error("zero ttl entries must not expire")
	}
}

func TestLRUClearAndStats(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	c.Set("a", 1)
	c.Get("a")
	c.Get("missing")
	c.Clear()

	if c.Size() != 0 {
		t.Errorf("size after clear = %d", c.Size())
	}
	if s := c.Stats(); s.Hits != 1 || s.Misses != 1 {
		t.Errorf("stats = %+v", s)
	}
	c.Set("b", 2)
	if _, ok := c.Get("b"); !ok {
		t.Error("cache should be usable after clear")
	}
}

func TestManagerSweep(t *testing.T) {
	c, clock := newTestCache(10, time.Second)
	c.Set("a", 1)
	m := NewManager(log.Discard())
	m.Register(c)

	clock.t = clock.t.Add(2 * time.Second)
	if n := m.Sweep(); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}

	m.Start(time.Hour)
	m.Stop()
	m.Stop()
}
