package cache

import (
	"testing"
	"time"
)

func TestLRUGetSet(t *testing.T) {
	c := NewLRU[int](2, 0)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Set("a", 1)
	c.Set("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("got %d,%v want 1,true", v, ok)
	}
	// "b" is now least recently used and must be evicted.
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
}

func TestLRUOverwrite(t *testing.T) {
	c := NewLRU[string](4, 0)
	c.Set("k", "v1")
	c.Set("k", "v2")
	if v, _ := c.Get("k"); v != "v2" {
		t.Fatalf("got %q want v2", v)
	}
	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
}

func TestLRUTTL(t *testing.T) {
	c := NewLRU[int](4, time.Nanosecond)
	c.Set("k", 1)
	time.Sleep(time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}
