// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package cache keeps raw API responses in memory for a limited time.
package cache

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/wneessen/meteobuf/internal/http"
)

// DefaultMaxEntries bounds the number of cached responses.
const DefaultMaxEntries = 256

type cacheEntry struct {
	Data   []byte
	Expiry time.Time
}

// CachedPerformer answers repeated requests from memory. Concurrent identical requests share
// one call to the wrapped performer. Failed requests are not cached. The returned bytes are
// shared between callers and must not be modified.
type CachedPerformer struct {
	next       http.Performer
	ttl        time.Duration
	maxEntries int
	clock      clockwork.Clock
	group      singleflight.Group

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// Option configures a CachedPerformer.
type Option func(*CachedPerformer)

// WithClock replaces the wall clock used for expiry.
func WithClock(clock clockwork.Clock) Option {
	return func(c *CachedPerformer) {
		c.clock = clock
	}
}

// WithMaxEntries bounds the cache size.
func WithMaxEntries(n int) Option {
	return func(c *CachedPerformer) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

func New(next http.Performer, ttl time.Duration, opts ...Option) *CachedPerformer {
	c := &CachedPerformer{
		next:       next,
		ttl:        ttl,
		maxEntries: DefaultMaxEntries,
		clock:      clockwork.NewRealClock(),
		cache:      make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Perform satisfies http.Performer.
func (c *CachedPerformer) Perform(ctx context.Context, method, endpoint string, query url.Values) ([]byte, error) {
	key := newKey(method, endpoint, query)

	c.mu.RLock()
	entry, ok := c.cache[key]
	if ok && c.clock.Now().Before(entry.Expiry) {
		c.mu.RUnlock()
		return entry.Data, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.group.Do(key, func() (any, error) {
		data, err := c.next.Perform(ctx, method, endpoint, query)
		if err != nil {
			return nil, err
		}
		c.store(key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// Len returns the number of cached responses, including expired ones not yet evicted.
func (c *CachedPerformer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *CachedPerformer) store(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if len(c.cache) >= c.maxEntries {
		c.evict(now)
	}
	c.cache[key] = cacheEntry{
		Data:   data,
		Expiry: now.Add(c.ttl),
	}
}

// evict drops expired entries, or the entry closest to expiry if none has expired.
func (c *CachedPerformer) evict(now time.Time) {
	var oldest string
	var oldestExpiry time.Time
	for key, entry := range c.cache {
		if !now.Before(entry.Expiry) {
			delete(c.cache, key)
			continue
		}
		if oldest == "" || entry.Expiry.Before(oldestExpiry) {
			oldest, oldestExpiry = key, entry.Expiry
		}
	}
	if len(c.cache) >= c.maxEntries && oldest != "" {
		delete(c.cache, oldest)
	}
}

func newKey(method, endpoint string, query url.Values) string {
	if method == "" {
		method = "GET"
	}
	return method + " " + endpoint + "?" + query.Encode()
}
