// Package imagecache keeps downloaded thumbnails in memory, keyed by URL.
package imagecache

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/uber-go/tally/v4"
	"golang.org/x/sync/singleflight"
)

// Fetcher downloads image bytes. *apiclient.Client satisfies it.
type Fetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// Cache stores successful fetches only, and at most one fetch per URL is in
// flight at any time. Byte slices returned by Get are shared between callers
// and must not be modified.
type Cache struct {
	fetcher Fetcher
	logger  *slog.Logger
	scope   tally.Scope

	mu      sync.RWMutex
	entries map[string][]byte

	group singleflight.Group
}

type Option func(*Cache)

func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

func WithMetricsScope(s tally.Scope) Option {
	return func(c *Cache) { c.scope = s }
}

func New(f Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher: f,
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
		scope:   tally.NoopScope,
		entries: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.scope = c.scope.SubScope("imagecache")

	return c
}

// Get returns the bytes for url, fetching them on first use. A caller whose
// ctx ends while waiting gets ctx.Err(); the shared fetch continues for any
// other waiters and still populates the cache.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, error) {
	if b, ok := c.Peek(url); ok {
		c.scope.Counter("hits").Inc(1)
		return b, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(url, func() (interface{}, error) {
		// A fetch that finished between Peek and DoChan has already stored it.
		if b, ok := c.Peek(url); ok {
			return b, nil
		}

		c.scope.Counter("misses").Inc(1)
		b, err := c.fetcher.FetchImage(fetchCtx, url)
		if err != nil {
			c.scope.Counter("fetch_errors").Inc(1)
			c.logger.Debug("image fetch failed", slog.String("url", url), slog.String("error", err.Error()))
			return nil, err
		}

		c.mu.Lock()
		c.entries[url] = b
		c.mu.Unlock()

		return b, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.scope.Counter("shared").Inc(1)
		}
		return res.Val.([]byte), nil
	}
}

// Peek returns cached bytes without fetching.
func (c *Cache) Peek(url string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.entries[url]
	return b, ok
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Purge drops every cached image. Fetches already in flight still store
// their result when they complete.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string][]byte)
}
