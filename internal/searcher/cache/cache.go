// Package cache stores serialized phrase-query results keyed by index
// fingerprint and normalized terms. Backends implement Store; QueryCache adds
// hit/miss accounting and collapses concurrent misses for the same key.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

const keyPrefix = "phrase:"

// Store is a byte-oriented key/value backend.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) (int64, error)
}

type QueryCache struct {
	store  Store
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
	onErr  func()
}

type Option func(*QueryCache)

// OnError registers fn to be called after every backend failure.
func OnError(fn func()) Option {
	return func(c *QueryCache) {
		c.onErr = fn
	}
}

func New(store Store, ttl time.Duration, opts ...Option) *QueryCache {
	c := &QueryCache{
		store:  store,
		ttl:    ttl,
		logger: slog.Default().With("component", "query-cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key derives the cache key for a normalized phrase against the index with
// the given fingerprint.
func Key(fingerprint string, terms []string) string {
	raw := fingerprint + "|" + strings.Join(terms, "\x1f")
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

// Get looks key up. Backend failures count as misses.
func (c *QueryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.failed()
		c.misses.Add(1)
		c.logger.Error("cache get failed", "key", key, "error", err)
		return nil, false
	}
	if !found {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "key", key)
	return data, true
}

func (c *QueryCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.store.Set(ctx, key, value, c.ttl); err != nil {
		c.failed()
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached value for key, or runs compute once for
// all concurrent callers and stores its result. cached reports whether the
// value came from the store.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	key string,
	compute func() ([]byte, error),
) (value []byte, cached bool, err error) {
	if data, ok := c.Get(ctx, key); ok {
		return data, true, nil
	}
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		data, err := compute()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, key, data)
		return data, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.([]byte), false, nil
}

// Invalidate drops every cached phrase result.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.store.DeletePrefix(ctx, keyPrefix)
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

func (c *QueryCache) failed() {
	c.errors.Add(1)
	if c.onErr != nil {
		c.onErr()
	}
}

func (c *QueryCache) Stats() (hits, misses, errors int64) {
	return c.hits.Load(), c.misses.Load(), c.errors.Load()
}
