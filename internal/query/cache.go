// Package query provides the process-wide client-side cache the frontend
// reads remote data through: time-bounded freshness, at-most-one fetch per
// key, stale values served during refetch, and change notification for
// dependent state. The cache is an explicit injectable service constructed
// once in main and passed by reference; nothing here is global.
package query

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key identifies one cached query. Build composite keys with NewKey so the
// separator stays in one place.
type Key string

// NewKey joins key parts into a stable identifier, e.g. NewKey("auth", "me").
func NewKey(parts ...string) Key {
	return Key(strings.Join(parts, "/"))
}

// entry is the cached state for one key. A nil value is a valid resolved
// state ("fetch succeeded, nothing there"), distinct from the key being
// absent altogether.
type entry struct {
	value      any
	resolvedAt time.Time
	ttl        time.Duration
	stale      bool
	gen        uint64
}

func (e *entry) fresh(now time.Time) bool {
	return !e.stale && now.Before(e.resolvedAt.Add(e.ttl))
}

// Event describes a cache change delivered to subscribers.
type Event struct {
	Key         Key
	Invalidated bool // true for Invalidate, false for a value write
}

// subscriber pairs a delivery channel with its key-prefix filter.
type subscriber struct {
	prefix Key
	ch     chan Event
}

// Cache is a shared, deduplicating, time-bounded query cache. Entries are
// created on first fetch and overwritten thereafter, never destroyed; the
// cache lives as long as the process.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	flights singleflight.Group
	subs    map[int]subscriber
	nextSub int
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source, for freshness-window tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New constructs an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[Key]*entry),
		subs:    make(map[int]subscriber),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the cached value for key if it is resolved and fresh.
// Stale or pending entries report a miss.
func (c *Cache) Lookup(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !e.fresh(c.now()) {
		return nil, false
	}
	return e.value, true
}

// Resolve returns the fresh cached value for key, or fetches one. Concurrent
// callers for the same key attach to a single in-flight fetch and observe the
// same outcome. A fetch error is returned to all attached callers and leaves
// any previous (stale) value in place. There is no client-side timeout: the
// fetch runs until it resolves or rejects, even if ctx is torn down.
func (c *Cache) Resolve(ctx context.Context, key Key, ttl time.Duration, fetch func(context.Context) (any, error)) (any, error) {
	if v, ok := c.Lookup(key); ok {
		return v, nil
	}

	c.mu.Lock()
	gen := c.gen(key)
	c.mu.Unlock()

	// The flight outlives whichever caller started it: joined callers must
	// see the fetch outcome even if the first request is torn down mid-flight.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := c.flights.Do(string(key), func() (any, error) {
		value, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.store(key, value, ttl, gen)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Set writes a resolved value directly, synchronously relative to the caller.
// Any in-flight fetch for the key is detached so its late result cannot
// overwrite this write.
func (c *Cache) Set(key Key, value any, ttl time.Duration) {
	c.mu.Lock()
	e := c.ensure(key)
	e.value = value
	e.resolvedAt = c.now()
	e.ttl = ttl
	e.stale = false
	e.gen++
	c.mu.Unlock()

	c.flights.Forget(string(key))
	c.notify(Event{Key: key})
}

// Invalidate marks entries stale without clearing their values, so consumers
// keep rendering the previous value until the refetch resolves. The next
// Resolve on each key fetches again.
func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	for _, key := range keys {
		if e, ok := c.entries[key]; ok {
			e.stale = true
		}
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.flights.Forget(string(key))
		c.notify(Event{Key: key, Invalidated: true})
	}
}

// Subscribe returns a channel of cache events for keys matching prefix (the
// empty prefix matches everything), plus a cancel function. Delivery is
// best-effort: a subscriber that falls behind misses events rather than
// blocking cache writers.
func (c *Cache) Subscribe(prefix Key) (<-chan Event, func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	ch := make(chan Event, 16)
	c.subs[id] = subscriber{prefix: prefix, ch: ch}
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
	return ch, cancel
}

// store records a fetch result unless a direct Set intervened since the
// flight was observed.
func (c *Cache) store(key Key, value any, ttl time.Duration, gen uint64) {
	c.mu.Lock()
	e := c.ensure(key)
	if e.gen != gen {
		c.mu.Unlock()
		return
	}
	e.value = value
	e.resolvedAt = c.now()
	e.ttl = ttl
	e.stale = false
	c.mu.Unlock()

	c.notify(Event{Key: key})
}

func (c *Cache) ensure(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

func (c *Cache) gen(key Key) uint64 {
	if e, ok := c.entries[key]; ok {
		return e.gen
	}
	return 0
}

func (c *Cache) notify(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sub := range c.subs {
		if !strings.HasPrefix(string(ev.Key), string(sub.prefix)) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// Resolve is the typed companion of Cache.Resolve for callers that know the
// value type stored under key. Typed nil pointers round-trip intact, so a
// resolved "nothing there" stays distinguishable from an unresolved key.
func Resolve[T any](ctx context.Context, c *Cache, key Key, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	v, err := c.Resolve(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Lookup is the typed companion of Cache.Lookup.
func Lookup[T any](c *Cache, key Key) (T, bool) {
	v, ok := c.Lookup(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
