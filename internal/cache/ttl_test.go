package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestTTLCacheExpiry(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache(10, time.Second)
	c.now = func() time.Time { return now }

	c.Set("k", "v")

	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("Get() = %v, %v, want v, true", v, ok)
	}

	now = now.Add(1500 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("Get() hit on expired entry")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expiry read, want 0", c.Len())
	}
}

func TestTTLCacheMissOnUnknownKey(t *testing.T) {
	c := NewTTLCache(10, time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get() hit on never-set key")
	}
}

func TestTTLCacheEvictsEarliestExpiry(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache(3, time.Minute)
	c.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
		now = now.Add(time.Second) // k0 expires first
	}

	c.Set("k3", 3)

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	if _, ok := c.Get("k0"); ok {
		t.Error("oldest entry k0 survived eviction")
	}
	if _, ok := c.Get("k3"); !ok {
		t.Error("newest entry k3 missing after eviction")
	}
}

func TestTTLCacheOverwriteDoesNotEvict(t *testing.T) {
	c := NewTTLCache(2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3) // overwrite, cache stays full but intact

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if v, _ := c.Get("a"); v != 3 {
		t.Errorf("Get(a) = %v, want 3", v)
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("entry b evicted by an overwrite")
	}
}

func TestKeyDeterministic(t *testing.T) {
	k1 := Key("flights", "OTP", "FCO", 2)
	k2 := Key("flights", "OTP", "FCO", 2)
	k3 := Key("flights", "OTP", "FCO", 3)

	if k1 != k2 {
		t.Error("Key() not deterministic for identical input")
	}
	if k1 == k3 {
		t.Error("Key() collided for different input")
	}
}
