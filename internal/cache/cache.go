// Package cache provides the keyed request cache shared by every view.
//
// Reads go through Fetch/Query: fresh entries are served from memory, stale or
// invalidated entries are refetched, and concurrent fetches of one key share a
// single call. Writes go through Mutate, which applies the mutation retry
// policy; callers invalidate affected keys when a mutation settles.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang/groupcache/singleflight"
	"github.com/runoshun/taskline/internal/domain"
)

// Default cache timings.
const (
	StaleTime = 5 * time.Minute
	GCTime    = 10 * time.Minute
)

// Key identifies a cached query. Keys are compared part by part, so
// Key{"tasks"} is a prefix of Key{"tasks", "42"} but not of Key{"tasksx"}.
type Key []string

// K builds a key from parts.
func K(parts ...string) Key {
	return Key(parts)
}

// String returns the key parts joined by "/".
func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix returns true if prefix matches the leading parts of k.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Append returns a new key with parts added.
func (k Key) Append(parts ...string) Key {
	out := make(Key, 0, len(k)+len(parts))
	out = append(out, k...)
	return append(out, parts...)
}

// Options configures a Client.
type Options struct {
	Clock     domain.Clock
	Sleep     func(ctx context.Context, d time.Duration) error // Backoff wait; defaults to a context-aware timer
	Logger    *slog.Logger
	StaleTime time.Duration
	GCTime    time.Duration
}

type entry struct {
	data      any
	key       Key
	updatedAt time.Time
	lastUsed  time.Time
	stale     bool
}

// pendingFetch tracks a call in flight so Invalidate, Remove and Clear can
// reach a result that has not been stored yet.
type pendingFetch struct {
	key         Key
	invalidated bool
	dropped     bool
}

// Client is a process-wide, concurrency-safe query cache.
type Client struct {
	clock     domain.Clock
	sleep     func(ctx context.Context, d time.Duration) error
	log       *slog.Logger
	entries   map[string]*entry
	pending   map[*pendingFetch]struct{}
	flight    singleflight.Group
	mu        sync.Mutex
	staleTime time.Duration
	gcTime    time.Duration
}

// New creates a Client.
func New(opts Options) *Client {
	c := &Client{
		clock:     opts.Clock,
		sleep:     opts.Sleep,
		log:       opts.Logger,
		entries:   make(map[string]*entry),
		pending:   make(map[*pendingFetch]struct{}),
		staleTime: opts.StaleTime,
		gcTime:    opts.GCTime,
	}
	if c.clock == nil {
		c.clock = domain.RealClock{}
	}
	if c.sleep == nil {
		c.sleep = sleepContext
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	if c.staleTime <= 0 {
		c.staleTime = StaleTime
	}
	if c.gcTime <= 0 {
		c.gcTime = GCTime
	}
	return c
}

// Fetch returns the cached value for key if it is fresh, otherwise calls fn
// (with the query retry policy) and caches the result.
// Failed fetches leave any previous value in place. A result whose key was
// invalidated while the call was in flight is stored as stale, and one whose
// key was removed is not stored at all.
//
// Concurrent callers share one call, which runs under the context of the
// caller that started it. A caller whose own context is still live retries
// once when that shared call was cancelled.
func (c *Client) Fetch(ctx context.Context, key Key, fn func(ctx context.Context) (any, error)) (any, error) {
	id := key.String()
	now := c.clock.Now()

	c.mu.Lock()
	if e, ok := c.entries[id]; ok && !e.stale && now.Sub(e.updatedAt) < c.staleTime {
		e.lastUsed = now
		data := e.data
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	load := func() (any, error) {
		return c.load(ctx, key, fn)
	}
	v, err := c.flight.Do(id, load)
	if err != nil && ctx.Err() == nil && isContextError(err) {
		v, err = c.flight.Do(id, load)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *Client) load(ctx context.Context, key Key, fn func(ctx context.Context) (any, error)) (any, error) {
	p := &pendingFetch{key: key}
	c.mu.Lock()
	c.pending[p] = struct{}{}
	c.mu.Unlock()

	v, err := runWithRetry(ctx, c, "query "+key.String(), ShouldRetryQuery, fn)

	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, p)
	if err != nil {
		return nil, err
	}
	if p.dropped {
		return v, nil
	}
	c.entries[key.String()] = &entry{
		data:      v,
		key:       key,
		updatedAt: now,
		lastUsed:  now,
		stale:     p.invalidated,
	}
	return v, nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Query is the typed form of Fetch.
func Query[T any](ctx context.Context, c *Client, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		// A key was reused with a different type; refetch uncached.
		c.Remove(key)
		return fn(ctx)
	}
	return typed, nil
}

// Mutate runs fn with the mutation retry policy. Nothing is cached.
func Mutate[T any](ctx context.Context, c *Client, name string, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := runWithRetry(ctx, c, "mutation "+name, ShouldRetryMutation, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, _ := v.(T)
	return typed, nil
}

// GetData returns the cached value for key, fresh or not.
func (c *Client) GetData(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}
	e.lastUsed = c.clock.Now()
	return e.data, true
}

// SetData stores v under key as fresh data.
func (c *Client) SetData(key Key, v any) {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key.String()] = &entry{
		data:      v,
		key:       key,
		updatedAt: now,
		lastUsed:  now,
	}
}

// IsFresh returns true if key holds data that Fetch would serve without a call.
func (c *Client) IsFresh(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	return ok && !e.stale && c.clock.Now().Sub(e.updatedAt) < c.staleTime
}

// Invalidate marks every entry under the given prefixes as stale and returns
// how many entries were marked. Stale data stays readable through GetData.
func (c *Client) Invalidate(prefixes ...Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		for _, p := range prefixes {
			if e.key.HasPrefix(p) {
				if !e.stale {
					n++
				}
				e.stale = true
				break
			}
		}
	}
	for p := range c.pending {
		for _, prefix := range prefixes {
			if p.key.HasPrefix(prefix) {
				p.invalidated = true
				break
			}
		}
	}
	if n > 0 {
		c.log.Debug("cache invalidated", "entries", n)
	}
	return n
}

// Remove drops every entry under prefix.
func (c *Client) Remove(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, id)
		}
	}
	for p := range c.pending {
		if p.key.HasPrefix(prefix) {
			p.dropped = true
		}
	}
}

// Clear drops every entry.
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	for p := range c.pending {
		p.dropped = true
	}
}

// Len returns the number of entries.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Sweep drops entries that have not been used for GCTime and returns how many
// were dropped.
func (c *Client) Sweep() int {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id, e := range c.entries {
		if now.Sub(e.lastUsed) >= c.gcTime {
			delete(c.entries, id)
			n++
		}
	}
	return n
}

// Run sweeps the cache every interval until ctx is done.
func (c *Client) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				c.log.Debug("cache swept", "entries", n)
			}
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
