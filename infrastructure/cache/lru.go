package cache

import (
	"container/list"
	"sync"
)

// NamespaceLRU is a namespaced, fixed capacity LRU cache. A capacity of zero
// or less disables caching.
type NamespaceLRU[V any] struct {
	capacity int
	items    map[string]*list.Element
	queue    *list.List
	mutex    sync.Mutex
	hits     uint64
	misses   uint64
}

type entry[V any] struct {
	compositeKey string
	value        V
}

// Stats is a snapshot of cache usage
type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// NewNamespaceLRU creates a new namespace-based LRU cache with specified capacity
func NewNamespaceLRU[V any](capacity int) *NamespaceLRU[V] {
	return &NamespaceLRU[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		queue:    list.New(),
	}
}

func compositeKey(namespace, key string) string {
	return namespace + ":" + key
}

// Set adds or updates a value and marks it most recently used
func (c *NamespaceLRU[V]) Set(namespace, key string, value V) {
	if c.capacity <= 0 {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	ck := compositeKey(namespace, key)
	if element, exists := c.items[ck]; exists {
		c.queue.MoveToFront(element)
		element.Value.(*entry[V]).value = value
		return
	}

	c.items[ck] = c.queue.PushFront(&entry[V]{compositeKey: ck, value: value})

	for c.queue.Len() > c.capacity {
		c.evict()
	}
}

// Get retrieves a value and marks it most recently used
func (c *NamespaceLRU[V]) Get(namespace, key string) (V, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	element, exists := c.items[compositeKey(namespace, key)]
	if !exists {
		c.misses++
		var zero V
		return zero, false
	}

	c.hits++
	c.queue.MoveToFront(element)
	return element.Value.(*entry[V]).value, true
}

// Stats returns the current entry count and hit/miss counters
func (c *NamespaceLRU[V]) Stats() Stats {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return Stats{
		Entries: c.queue.Len(),
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

// evict removes the least recently used item. Caller holds the lock.
func (c *NamespaceLRU[V]) evict() {
	element := c.queue.Back()
	if element == nil {
		return
	}

	c.queue.Remove(element)
	delete(c.items, element.Value.(*entry[V]).compositeKey)
}
