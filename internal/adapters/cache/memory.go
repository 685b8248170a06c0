package cache

import (
	"sync"
	"time"
)

// MemoryCache is an in-memory cache with TTL support.
// When sliding is enabled, every successful Get extends the entry's lifetime.
type MemoryCache[V any] struct {
	entries sync.Map
	ttl     time.Duration
	sliding bool
	stop    chan struct{}
	once    sync.Once
}

// cacheEntry holds a cached value with expiration metadata.
type cacheEntry[V any] struct {
	mu        sync.Mutex
	value     V
	expiresAt time.Time
}

func (e *cacheEntry[V]) expired(now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return now.After(e.expiresAt)
}

// NewMemoryCache creates a new in-memory cache with the specified TTL.
func NewMemoryCache[V any](ttl time.Duration) *MemoryCache[V] {
	return newMemoryCache[V](ttl, false)
}

// NewSlidingCache creates a cache whose entries expire ttl after their last access.
func NewSlidingCache[V any](ttl time.Duration) *MemoryCache[V] {
	return newMemoryCache[V](ttl, true)
}

func newMemoryCache[V any](ttl time.Duration, sliding bool) *MemoryCache[V] {
	c := &MemoryCache[V]{
		ttl:     ttl,
		sliding: sliding,
		stop:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Get retrieves a value from the cache.
// Returns the value and true if found and not expired, otherwise the zero value and false.
func (c *MemoryCache[V]) Get(key string) (V, bool) {
	var zero V

	value, ok := c.entries.Load(key)
	if !ok {
		return zero, false
	}

	entry := value.(*cacheEntry[V])
	now := time.Now()
	if entry.expired(now) {
		c.entries.CompareAndDelete(key, entry)
		return zero, false
	}

	if c.sliding {
		entry.mu.Lock()
		entry.expiresAt = now.Add(c.ttl)
		entry.mu.Unlock()
	}

	return entry.value, true
}

// Set stores a value in the cache with the configured TTL.
func (c *MemoryCache[V]) Set(key string, value V) {
	c.entries.Store(key, &cacheEntry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// Len returns the number of entries that have not expired.
func (c *MemoryCache[V]) Len() int {
	now := time.Now()
	n := 0
	c.entries.Range(func(_, value any) bool {
		if !value.(*cacheEntry[V]).expired(now) {
			n++
		}
		return true
	})
	return n
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *MemoryCache[V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

// cleanup periodically removes expired entries from the cache.
func (c *MemoryCache[V]) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired(time.Now())
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryCache[V]) evictExpired(now time.Time) {
	c.entries.Range(func(key, value any) bool {
		if value.(*cacheEntry[V]).expired(now) {
			c.entries.CompareAndDelete(key, value)
		}
		return true
	})
}
