// Package cache provides a hybrid LRU for rendered icons, bounded by both
// entry count and total byte size.
package cache

import (
	"container/list"
	"fmt"

	"github.com/go-drift/snapshot/pkg/icon"
)

// Cache maps opaque fingerprints to rendered icons with least-recently-used
// eviction. Both bounds are enforced after every insert: the entry count
// never exceeds maxEntries, and when a byte budget is configured the total
// of SizeInBytes over all entries never exceeds it.
//
// Cache is not safe for concurrent use. The renderer facade serialises
// every access under one mutex together with its pending-render map.
type Cache[K comparable] struct {
	maxEntries int
	maxBytes   int64

	entries    map[K]*list.Element
	order      *list.List // front = most recently used
	totalBytes int64
}

type entry[K comparable] struct {
	key  K
	icon *icon.Icon
}

// New builds a cache bounded to maxEntries entries. A positive maxBytes
// also bounds the total encoded size; zero or negative disables the byte
// bound.
func New[K comparable](maxEntries int, maxBytes int64) (*Cache[K], error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("cache: maxEntries must be positive, got %d", maxEntries)
	}
	return &Cache[K]{
		maxEntries: maxEntries,
		maxBytes:   maxBytes,
		entries:    make(map[K]*list.Element),
		order:      list.New(),
	}, nil
}

// Get returns the icon for key and bumps it to most recently used.
func (c *Cache[K]) Get(key K) (*icon.Icon, bool) {
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry[K]).icon, true
}

// Peek returns the icon for key without touching recency order.
func (c *Cache[K]) Peek(key K) (*icon.Icon, bool) {
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return el.Value.(*entry[K]).icon, true
}

// Contains reports whether key is cached, without touching recency order.
func (c *Cache[K]) Contains(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Put inserts the icon as most recently used, evicting least-recently-used
// entries until both bounds hold. An icon whose size alone exceeds the
// byte budget is refused outright, leaving the cache unchanged, so one
// oversized entry cannot flush everything else for no lasting benefit.
// Reports whether the icon was retained.
func (c *Cache[K]) Put(key K, ic *icon.Icon) bool {
	size := int64(ic.SizeInBytes())

	if el, ok := c.entries[key]; ok {
		c.removeElement(el)
	}
	if c.maxBytes > 0 && size > c.maxBytes {
		return false
	}
	for c.maxBytes > 0 && c.totalBytes+size > c.maxBytes && c.order.Len() > 0 {
		c.evictOldest()
	}
	for c.order.Len() >= c.maxEntries {
		c.evictOldest()
	}

	el := c.order.PushFront(&entry[K]{key: key, icon: ic})
	c.entries[key] = el
	c.totalBytes += size
	return true
}

// Remove deletes the entry for key if present.
func (c *Cache[K]) Remove(key K) {
	if el, ok := c.entries[key]; ok {
		c.removeElement(el)
	}
}

// Clear empties the cache and resets the byte total.
func (c *Cache[K]) Clear() {
	c.entries = make(map[K]*list.Element)
	c.order.Init()
	c.totalBytes = 0
}

// Len returns the number of cached entries.
func (c *Cache[K]) Len() int {
	return c.order.Len()
}

// TotalBytes returns the sum of SizeInBytes over all cached entries.
func (c *Cache[K]) TotalBytes() int64 {
	return c.totalBytes
}

func (c *Cache[K]) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.removeElement(oldest)
}

func (c *Cache[K]) removeElement(el *list.Element) {
	e := el.Value.(*entry[K])
	c.order.Remove(el)
	delete(c.entries, e.key)
	c.totalBytes -= int64(e.icon.SizeInBytes())
}
