package utils

import (
	"sync"
)

// CacheItem represents a cached item
type CacheItem[T any] struct {
	Value T
	Err   error
}

// Cache provides a generic, concurrency safe memo
type Cache[K comparable, V any] struct {
	items map[K]*CacheItem[V]
	mutex sync.RWMutex
}

// NewCache creates a new generic cache
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]*CacheItem[V]),
	}
}

// Get retrieves an item from the cache
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if item, exists := c.items[key]; exists && item.Err == nil {
		return item.Value, true
	}

	var zero V
	return zero, false
}

// GetOrCompute returns the cached result for key, computing and storing it on a miss.
// Failed computations are cached as well so the same error is reported for the same key.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	c.mutex.RLock()
	item, exists := c.items[key]
	c.mutex.RUnlock()
	if exists {
		return item.Value, item.Err
	}

	value, err := compute()

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if existing, ok := c.items[key]; ok {
		return existing.Value, existing.Err
	}
	c.items[key] = &CacheItem[V]{Value: value, Err: err}
	return value, err
}

// Set stores an item in the cache
func (c *Cache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = &CacheItem[V]{
		Value: value,
	}
}

// Delete removes an item from the cache
func (c *Cache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *Cache[K, V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = make(map[K]*CacheItem[V])
}

// Size returns the number of items in the cache
func (c *Cache[K, V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}
