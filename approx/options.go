// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package approx

import "log/slog"

type config[K comparable, V any] struct {
	onEvict func(K, V)
	logger  *slog.Logger
}

func defaultConfig[K comparable, V any]() *config[K, V] {
	return &config[K, V]{
		logger: slog.New(slog.DiscardHandler),
	}
}

// Option configures a Cache.
type Option[K comparable, V any] func(*config[K, V])

// WithOnEvict registers a callback invoked for every entry removed to make
// room for a new key. It runs outside the cache lock. Flush does not invoke
// it.
func WithOnEvict[K comparable, V any](onEvict func(K, V)) Option[K, V] {
	return func(c *config[K, V]) {
		c.onEvict = onEvict
	}
}

// WithLogger sets the logger used for capacity changes and clones.
func WithLogger[K comparable, V any](logger *slog.Logger) Option[K, V] {
	return func(c *config[K, V]) {
		if logger != nil {
			c.logger = logger
		}
	}
}
