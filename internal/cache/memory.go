package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
)

// Memory cache defaults.
const (
	DefaultMaxEntries = 50
	DefaultMaxCost    = 8 << 20 // bytes of summarized source text
)

type memoryEntry struct {
	key      string
	value    digest.Digest
	cost     int
	storedAt time.Time
}

// MemoryCache is a count- and cost-bounded LRU store. Eviction removes the
// least recently used entry until both limits hold.
type MemoryCache struct {
	mu         sync.Mutex
	maxEntries int
	maxCost    int
	totalCost  int
	order      *list.List // front = most recent
	entries    map[string]*list.Element
}

// NewMemory creates a bounded in-memory cache. Non-positive limits take
// defaults.
func NewMemory(maxEntries, maxCost int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if maxCost <= 0 {
		maxCost = DefaultMaxCost
	}
	return &MemoryCache{
		maxEntries: maxEntries,
		maxCost:    maxCost,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
	}
}

// Get returns the cached digest for key and marks it recently used.
func (c *MemoryCache) Get(_ context.Context, key string) (digest.Digest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return digest.Digest{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*memoryEntry).value, true
}

// Set inserts or replaces an entry, then evicts until limits hold.
func (c *MemoryCache) Set(_ context.Context, key string, d digest.Digest, cost int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		old := el.Value.(*memoryEntry)
		c.totalCost += cost - old.cost
		el.Value = &memoryEntry{key: key, value: d, cost: cost, storedAt: time.Now()}
		c.order.MoveToFront(el)
	} else {
		el := c.order.PushFront(&memoryEntry{key: key, value: d, cost: cost, storedAt: time.Now()})
		c.entries[key] = el
		c.totalCost += cost
	}

	for c.order.Len() > c.maxEntries || c.totalCost > c.maxCost {
		back := c.order.Back()
		if back == nil {
			break
		}
		entry := back.Value.(*memoryEntry)
		c.order.Remove(back)
		delete(c.entries, entry.key)
		c.totalCost -= entry.cost
	}
}

// Resize adjusts the entry limit, evicting immediately if needed. Used by
// the resource policy adapter; advisory, never fails.
func (c *MemoryCache) Resize(maxEntries int) {
	if maxEntries <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxEntries = maxEntries
	for c.order.Len() > c.maxEntries {
		back := c.order.Back()
		entry := back.Value.(*memoryEntry)
		c.order.Remove(back)
		delete(c.entries, entry.key)
		c.totalCost -= entry.cost
	}
}

// Len returns the current entry count.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Cost returns the current total cost.
func (c *MemoryCache) Cost() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCost
}
