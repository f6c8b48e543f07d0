package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(1024)
	defer c.Close()

	if err := c.Set("https://cdn.example.com/a.css", []byte("body{}"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	body, ok := c.Get("https://cdn.example.com/a.css")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if string(body) != "body{}" {
		t.Errorf("Expected 'body{}', got %q", body)
	}

	if _, ok := c.Get("https://cdn.example.com/missing.css"); ok {
		t.Error("Expected cache miss for unknown key")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(1024)
	defer c.Close()

	c.Set("k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("Expected expired entry to miss")
	}
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	// Budget holds two 4-byte bodies but not three.
	c := NewMemoryCache(8)
	defer c.Close()

	c.Set("a", []byte("aaaa"), time.Minute)
	c.Set("b", []byte("bbbb"), time.Minute)
	c.Get("a") // promote a
	c.Set("c", []byte("cccc"), time.Minute)

	if _, ok := c.Get("b"); ok {
		t.Error("Expected least recently used entry 'b' to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("Expected promoted entry 'a' to survive")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("Expected new entry 'c' to be present")
	}
}
