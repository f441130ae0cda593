// Package cache implements the three-tier floor cache ensemble: an
// in-memory LRU (Tier 1), an embedded key-value store (Tier 2), and a
// bounded worker pool performing single-flight generation (Tier 3).
package cache

import (
	"container/list"
	"sync"

	"github.com/ashfall/worldcore/pkg/floor"
)

// LRU is a bounded in-memory floor-id keyed cache with O(1) get/put,
// reordering entries to most-recently-used on every access. Safe for
// concurrent use behind a single mutex — hold times are bounded to a
// map lookup plus a list pointer swap.
type LRU struct {
	mu       sync.Mutex
	capacity int
	items    map[uint32]*list.Element
	order    *list.List // front = most recently used
}

type lruEntry struct {
	floorID uint32
	chunk   *floor.ChunkData
}

// NewLRU returns an LRU with the given capacity. Capacity below 1 is
// clamped to 1.
func NewLRU(capacity int) *LRU {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU{
		capacity: capacity,
		items:    make(map[uint32]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the cached chunk for floorID, if present, promoting it to
// most-recently-used.
func (c *LRU) Get(floorID uint32) (*floor.ChunkData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[floorID]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).chunk, true
}

// Put inserts or refreshes floorID's cached chunk, evicting the least
// recently used entry if the cache is at capacity.
func (c *LRU) Put(floorID uint32, chunk *floor.ChunkData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[floorID]; ok {
		el.Value.(*lruEntry).chunk = chunk
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&lruEntry{floorID: floorID, chunk: chunk})
	c.items[floorID] = el

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry).floorID)
		}
	}
}

// Len reports the number of entries currently cached.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
