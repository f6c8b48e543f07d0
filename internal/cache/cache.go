// internal/cache/cache.go
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Cache defines the interface for stylesheet body caching.
//
// The CSS aggregator fetches every <link rel="stylesheet"> target on a page;
// sites sharing a framework stylesheet hit the same URLs across requests, so
// bodies are kept in memory with LRU eviction.
type Cache interface {
	// Get retrieves a cached body by key.
	Get(key string) ([]byte, bool)

	// Set stores a body in cache with the specified TTL.
	Set(key string, body []byte, ttl time.Duration) error

	// Delete removes a cached body by key.
	Delete(key string) error

	// Clear removes all cached bodies.
	Clear() error

	// Close stops background goroutines and releases the cache.
	Close()
}

// cacheEntry represents a cached stylesheet body with metadata
type cacheEntry struct {
	Body      []byte
	ExpiresAt time.Time
	Key       string // For LRU tracking
}

// MemoryCache implements in-memory byte caching with LRU eviction
type MemoryCache struct {
	store   map[string]*list.Element // Map key to list element
	lruList *list.List               // Doubly-linked list for LRU ordering
	mu      sync.Mutex
	maxSize int64 // Maximum cache size in bytes
	size    int64 // Current size in bytes
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewMemoryCache creates a new in-memory cache with LRU eviction
func NewMemoryCache(maxSizeBytes int64) *MemoryCache {
	if maxSizeBytes <= 0 {
		maxSizeBytes = 50 * 1024 * 1024 // Default: 50MB
	}

	ctx, cancel := context.WithCancel(context.Background())

	cache := &MemoryCache{
		store:   make(map[string]*list.Element),
		lruList: list.New(),
		maxSize: maxSizeBytes,
		ctx:     ctx,
		cancel:  cancel,
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves a cached body, promoting it to most recently used.
func (mc *MemoryCache) Get(key string) ([]byte, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	element, exists := mc.store[key]
	if !exists {
		return nil, false
	}

	entry := element.Value.(*cacheEntry)
	if time.Now().After(entry.ExpiresAt) {
		mc.removeElement(element)
		return nil, false
	}

	mc.lruList.MoveToFront(element)
	return entry.Body, true
}

// Set stores a body, evicting least recently used entries to stay under the
// size budget.
func (mc *MemoryCache) Set(key string, body []byte, ttl time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if element, exists := mc.store[key]; exists {
		mc.removeElement(element)
	}

	entry := &cacheEntry{
		Body:      body,
		ExpiresAt: time.Now().Add(ttl),
		Key:       key,
	}

	element := mc.lruList.PushFront(entry)
	mc.store[key] = element
	mc.size += int64(len(body))

	for mc.size > mc.maxSize && mc.lruList.Len() > 0 {
		oldest := mc.lruList.Back()
		if oldest == nil {
			break
		}
		log.Debug().
			Str("key", oldest.Value.(*cacheEntry).Key).
			Msg("Evicting LRU cache entry")
		mc.removeElement(oldest)
	}

	return nil
}

// Delete removes a cached body by key.
func (mc *MemoryCache) Delete(key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if element, exists := mc.store[key]; exists {
		mc.removeElement(element)
	}
	return nil
}

// Clear removes all cached bodies.
func (mc *MemoryCache) Clear() error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.store = make(map[string]*list.Element)
	mc.lruList = list.New()
	mc.size = 0
	return nil
}

// Close stops the background cleanup goroutine.
func (mc *MemoryCache) Close() {
	mc.cancel()
}

// removeElement removes an element from both the map and the LRU list.
// Caller must hold the mutex.
func (mc *MemoryCache) removeElement(element *list.Element) {
	entry := element.Value.(*cacheEntry)
	mc.lruList.Remove(element)
	delete(mc.store, entry.Key)
	mc.size -= int64(len(entry.Body))
}

// cleanupExpired periodically drops expired entries.
func (mc *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-mc.ctx.Done():
			return
		case <-ticker.C:
			mc.mu.Lock()
			now := time.Now()
			for _, element := range mc.store {
				if now.After(element.Value.(*cacheEntry).ExpiresAt) {
					mc.removeElement(element)
				}
			}
			mc.mu.Unlock()
		}
	}
}
