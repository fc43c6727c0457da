// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package approx provides a bounded cache that evicts in FIFO order unless
// callers promote entries with Touch or Put, in which case eviction becomes
// LRU-like. The bound is approximate under concurrent inserts.
//
// Get reads the table without taking the cache lock and never changes the
// eviction order. Keys must be valid comparable values; there is no nil-key
// check.
package approx

import (
	"container/list"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/luxfi/approxcache"
)

var _ approxcache.Cacher[struct{}, struct{}] = (*Cache[struct{}, struct{}])(nil)

// Cache is a thread-safe, approximately bounded cache.
type Cache[K comparable, V any] struct {
	// lock serializes every edit that touches both order and entries.
	lock  sync.Mutex
	order *list.List // oldest at the front
	index map[K]*list.Element

	entries *xsync.MapOf[K, V]

	maxSize atomic.Int64
	// queued mirrors order.Len() so the eviction loop can poll it without
	// the lock.
	queued atomic.Int64

	hits    atomic.Uint64
	misses  atomic.Uint64
	reused  atomic.Uint64
	evicted atomic.Uint64

	onEvict func(K, V)
	log     *slog.Logger
}

// New creates a cache holding approximately maxSize entries.
func New[K comparable, V any](maxSize int, opts ...Option[K, V]) (*Cache[K, V], error) {
	if err := approxcache.CheckCapacity(maxSize); err != nil {
		return nil, err
	}

	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Cache[K, V]{
		order:   list.New(),
		index:   make(map[K]*list.Element, maxSize),
		entries: xsync.NewMapOf[K, V](xsync.WithPresize(maxSize)),
		onEvict: cfg.onEvict,
		log:     cfg.logger,
	}
	c.maxSize.Store(int64(maxSize))
	return c, nil
}

// NewFrom creates a cache of maxSize and fills it with the entries of src,
// oldest first. Entries evicted from src while copying are skipped. Reading
// src does not change its hit and miss counters.
func NewFrom[K comparable, V any](maxSize int, src *Cache[K, V], opts ...Option[K, V]) (*Cache[K, V], error) {
	c, err := New(maxSize, opts...)
	if err != nil {
		return nil, err
	}

	var copied, skipped int
	for _, key := range src.Keys() {
		value, ok := src.entries.Load(key)
		if !ok {
			skipped++
			continue
		}
		c.Put(key, value)
		copied++
	}

	c.log.Debug("cloned cache",
		slog.Int("maxSize", maxSize),
		slog.Int("copied", copied),
		slog.Int("skipped", skipped),
	)
	return c, nil
}

// SetMaxSize changes the bound used by future inserts. Existing entries are
// not evicted until the next Put of a new key.
func (c *Cache[K, V]) SetMaxSize(maxSize int) error {
	if err := approxcache.CheckCapacity(maxSize); err != nil {
		return err
	}
	old := c.maxSize.Swap(int64(maxSize))
	c.log.Debug("cache capacity changed",
		slog.Int64("old", old),
		slog.Int("new", maxSize),
	)
	return nil
}

// MaxSize returns the current bound.
func (c *Cache[K, V]) MaxSize() int {
	return int(c.maxSize.Load())
}

// Touch marks key as the most recently used entry. It is a no-op if key is
// not cached.
func (c *Cache[K, V]) Touch(key K) {
	if _, ok := c.entries.Load(key); !ok {
		return
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if elem, ok := c.index[key]; ok {
		c.order.MoveToBack(elem)
		c.reused.Add(1)
	}
}

// Put inserts or replaces an element in the cache. Replacing an entry
// promotes it and never evicts.
func (c *Cache[K, V]) Put(key K, value V) {
	if _, ok := c.entries.Load(key); ok {
		c.lock.Lock()
		refreshed := c.refreshLocked(key, value)
		c.lock.Unlock()
		if refreshed {
			return
		}
	}

	c.makeRoom()

	c.lock.Lock()
	defer c.lock.Unlock()

	// Another Put may have inserted key while we were evicting.
	if c.refreshLocked(key, value) {
		return
	}
	c.index[key] = c.order.PushBack(key)
	c.queued.Add(1)
	c.entries.Store(key, value)
}

// Get returns the entry with the key, if it exists. It does not affect the
// eviction order.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	value, ok := c.entries.Load(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return value, ok
}

// Len returns the number of queued keys.
func (c *Cache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.order.Len()
}

// Flush removes all entries and resets the counters. The eviction callback
// is not called for flushed entries.
func (c *Cache[K, V]) Flush() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.order.Init()
	c.index = make(map[K]*list.Element)
	c.queued.Store(0)
	c.entries.Clear()

	c.hits.Store(0)
	c.misses.Store(0)
	c.reused.Store(0)
	c.evicted.Store(0)
}

// PortionFilled returns fraction of cache currently filled.
func (c *Cache[K, V]) PortionFilled() float64 {
	return float64(c.Len()) / float64(c.MaxSize())
}

// Keys returns the cached keys, oldest first.
func (c *Cache[K, V]) Keys() []K {
	c.lock.Lock()
	defer c.lock.Unlock()

	keys := make([]K, 0, c.order.Len())
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(K))
	}
	return keys
}

// Stats returns the current counters.
func (c *Cache[K, V]) Stats() approxcache.Stats {
	return approxcache.Stats{
		Size:    int(c.queued.Load()),
		MaxSize: c.MaxSize(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Reused:  c.reused.Load(),
		Evicted: c.evicted.Load(),
	}
}

func (c *Cache[K, V]) String() string {
	return c.Stats().String()
}

// refreshLocked promotes key and replaces its value if key is queued.
func (c *Cache[K, V]) refreshLocked(key K, value V) bool {
	elem, ok := c.index[key]
	if !ok {
		return false
	}
	c.order.MoveToBack(elem)
	c.entries.Store(key, value)
	c.reused.Add(1)
	return true
}

// makeRoom evicts the oldest key until fewer than maxSize keys are queued.
// The lock is taken once per eviction, so concurrent inserts share the work
// and the bound may be overshot or undershot briefly.
func (c *Cache[K, V]) makeRoom() {
	for c.queued.Load() >= c.maxSize.Load() {
		key, value, removed, more := c.evictOldest()
		if removed && c.onEvict != nil {
			c.onEvict(key, value)
		}
		if !more {
			return
		}
	}
}

// evictOldest dequeues the oldest key and drops its entry. removed is false
// if the key had no entry; more is false if the queue was empty.
func (c *Cache[K, V]) evictOldest() (key K, value V, removed bool, more bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	oldest := c.order.Front()
	if oldest == nil {
		return key, value, false, false
	}
	key = c.order.Remove(oldest).(K)
	delete(c.index, key)
	c.queued.Add(-1)

	value, removed = c.entries.LoadAndDelete(key)
	if removed {
		c.evicted.Add(1)
	}
	return key, value, removed, true
}
