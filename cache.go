// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package approxcache provides caching interfaces shared by the approximate cache
// and its wrappers.
package approxcache

import (
	"errors"
	"fmt"
)

// MinCapacity is the smallest bound a cache can be configured with.
const MinCapacity = 2

// ErrInvalidCapacity is returned when a cache bound is below MinCapacity.
var ErrInvalidCapacity = errors.New("invalid cache capacity")

// Cacher acts as a best effort key value store.
type Cacher[K comparable, V any] interface {
	// Put inserts an element into the cache.
	Put(key K, value V)

	// Get returns the entry with the key, if it exists.
	Get(key K) (V, bool)

	// Touch marks the entry with the key as recently used, if it exists.
	Touch(key K)

	// Flush removes all entries from the cache.
	Flush()

	// Len returns the number of elements in the cache.
	Len() int

	// PortionFilled returns fraction of cache currently filled (0 --> 1).
	PortionFilled() float64
}

// Stats is a point in time view of a cache's counters. Fields are read
// independently and may not line up exactly under concurrent use.
type Stats struct {
	Size    int
	MaxSize int
	Hits    uint64
	Misses  uint64
	Reused  uint64
	Evicted uint64
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"SIZE:%d, MAX_SIZE:%d, HIT:%d, MISS:%d, REUSED_KEYS:%d, REMOVED_KEYS:%d",
		s.Size, s.MaxSize, s.Hits, s.Misses, s.Reused, s.Evicted,
	)
}

// CheckCapacity returns ErrInvalidCapacity if size is below MinCapacity.
func CheckCapacity(size int) error {
	if size < MinCapacity {
		return fmt.Errorf("%w: %d is below the minimum of %d", ErrInvalidCapacity, size, MinCapacity)
	}
	return nil
}
