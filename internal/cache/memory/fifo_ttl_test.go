package memory

import (
	"testing"
	"time"
)

func TestFIFOTTLExpiry(t *testing.T) {
	c := NewFIFOTTL[string, string](10, 30*time.Millisecond)
	c.Set("k1", "v1")
	if _, ok := c.Get("k1"); !ok {
		t.Fatalf("expected hit before expiry")
	}
	time.Sleep(60 * time.Millisecond)
	if _, ok := c.Get("k1"); ok {
		t.Fatalf("expected miss after ttl expiry")
	}
}

func TestFIFOTTLEvictsOldestInserted(t *testing.T) {
	c := NewFIFOTTL[string, string](2, time.Minute)
	c.Set("a", "aa")
	c.Set("b", "bb")

	// A read must not refresh insertion order.
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("touch a: expected hit")
	}
	c.Set("c", "cc")

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected a (oldest inserted) to be evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatalf("expected b to remain")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatalf("expected c to remain")
	}
}

func TestFIFOTTLUpdateKeepsPosition(t *testing.T) {
	c := NewFIFOTTL[string, string](2, time.Minute)
	c.Set("a", "aa")
	c.Set("b", "bb")
	c.Set("a", "aa2") // refresh in place, still oldest
	c.Set("c", "cc")

	if _, ok := c.Get("a"); ok {
		t.Fatalf("updated entry should keep its insertion position and be evicted first")
	}
	if v, ok := c.Get("b"); !ok || v != "bb" {
		t.Fatalf("expected b to remain, got %q ok=%v", v, ok)
	}
}

func TestFIFOTTLLen(t *testing.T) {
	c := NewFIFOTTL[string, int](5, time.Minute)
	if c.Len() != 0 {
		t.Fatalf("expected empty cache")
	}
	c.Set("a", 1)
	c.Set("b", 2)
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	c.Delete("a")
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after delete, got %d", c.Len())
	}
}

func TestFIFOTTLNilReceiver(t *testing.T) {
	var c *FIFOTTL[string, string]
	c.Set("a", "x")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("nil cache must miss")
	}
	if c.Len() != 0 {
		t.Fatalf("nil cache must report zero length")
	}
}
