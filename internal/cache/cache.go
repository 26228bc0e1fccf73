// Package cache is the shared query cache behind every page read: entries are
// keyed [scope, entity, id?, params], considered fresh for a fixed window, and
// mutation handlers invalidate the matching keys so the next read refetches.
package cache

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a fetched result counts as fresh.
const DefaultTTL = 5 * time.Minute

const sep = "|"

// Key builds the composite cache key from scope, entity and extra segments.
func Key(scope, entity string, parts ...string) string {
	segs := append([]string{scope, entity}, parts...)
	return strings.Join(segs, sep)
}

// Params canonicalizes query params into a stable key segment.
func Params(p url.Values) string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strings.Join(p[k], ","))
	}
	return b.String()
}

type Cache struct {
	store *gocache.Cache
	group singleflight.Group
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: gocache.New(ttl, 2*ttl)}
}

// Do returns the cached value for key when fresh, otherwise runs fetch and
// stores the result. Concurrent fetches for the same key are deduplicated; a
// failed fetch is retried once before the error surfaces.
func (c *Cache) Do(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := c.store.Get(key); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.store.Get(key); ok {
			return v, nil
		}
		v, err := fetch(ctx)
		if err != nil {
			v, err = fetch(ctx)
		}
		if err != nil {
			return nil, err
		}
		c.store.SetDefault(key, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate marks every entry under the given key prefix as stale.
func (c *Cache) Invalidate(scope, entity string, parts ...string) {
	prefix := Key(scope, entity, parts...)
	for k := range c.store.Items() {
		if k == prefix || strings.HasPrefix(k, prefix+sep) {
			c.store.Delete(k)
		}
	}
}

// Flush drops everything (logout, tests).
func (c *Cache) Flush() {
	c.store.Flush()
}

// Through is the typed read-through used by handlers.
func Through[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Do(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	t, _ := v.(T)
	return t, nil
}
