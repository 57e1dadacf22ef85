// Package query implements the cache and query coordinator: keyed reads with staleness,
// de-duplicated fetches and mutations that invalidate dependent keys.
package query

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
	"unique"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/genie/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const tracerName = "go.trai.ch/genie/query"

// Fetcher loads the value of a query.
type Fetcher func(ctx context.Context) (any, error)

// Coordinator owns a set of cache entries. Instances share no state.
type Coordinator struct {
	defaultStaleAfter time.Duration
	logger            ports.Logger
	tracer            trace.Tracer

	group singleflight.Group

	mu      sync.Mutex
	entries map[unique.Handle[string]]*entry
}

type entry struct {
	domain.CacheEntry
	// gen changes whenever the entry is invalidated or written directly, so a fetch that
	// started earlier can tell its result is outdated.
	gen uint64
}

// New creates an empty Coordinator.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		tracer:  otel.Tracer(tracerName),
		entries: make(map[unique.Handle[string]]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Read returns the value for key. A fresh resolved value is returned without calling fetch.
// Otherwise fetch is called, shared by every concurrent read of the same key. Under UseIfStale a
// stale value is returned immediately while a background refresh runs.
func (c *Coordinator) Read(ctx context.Context, key domain.QueryKey, fetch Fetcher, opts ...ReadOption) (any, error) {
	if key.IsZero() {
		return nil, domain.ErrInvalidQueryKey
	}
	o := newReadOptions(opts)

	c.mu.Lock()
	e := c.entryLocked(key)
	if o.hasStaleAfter {
		e.StaleAfter = o.staleAfter
	}
	snapshot := e.CacheEntry
	c.mu.Unlock()

	if !o.enabled {
		if snapshot.HasValue() {
			return snapshot.Value, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrQueryDisabled, "nothing cached"), "key", key.String())
	}

	if snapshot.Status == domain.StatusResolved {
		if !snapshot.IsStale(time.Now()) {
			c.debug("cache hit " + key.String())
			return snapshot.Value, nil
		}
		if o.policy == UseIfStale {
			c.debug("serving stale " + key.String())
			go func() {
				_, _ = c.fetch(context.WithoutCancel(ctx), key, fetch, o)
			}()
			return snapshot.Value, nil
		}
	}

	return c.fetch(ctx, key, fetch, o)
}

// fetch runs fetch for key unless a fetch is already in flight, in which case it waits for
// that one. The fetch outlives ctx; cancelling ctx only stops the wait.
func (c *Coordinator) fetch(ctx context.Context, key domain.QueryKey, fetch Fetcher, o readOptions) (any, error) {
	ch := c.group.DoChan(key.String(), func() (any, error) {
		return c.run(context.WithoutCancel(ctx), key, fetch, o)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Coordinator) run(ctx context.Context, key domain.QueryKey, fetch Fetcher, o readOptions) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	gen := e.gen
	e.Fetching = true
	if !e.HasValue() {
		e.Status = domain.StatusPending
	}
	c.mu.Unlock()

	ctx, span := c.tracer.Start(ctx, "query "+key.Kind())
	span.SetAttributes(
		attribute.String("query.key", key.String()),
		attribute.String("query.fingerprint", key.Fingerprint()),
	)
	defer span.End()

	c.debug("fetching " + key.String())
	value, err := attempt(ctx, fetch, o)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.KindOf(err).String())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries[key.Handle()] != e {
		// Cleared while in flight; the result still goes to the waiting callers.
		return value, err
	}
	e.Fetching = false

	if err != nil {
		e.Status = domain.StatusErrored
		e.Err = err
		return value, err
	}

	if e.gen != gen && !e.Invalidated {
		// Written directly while in flight; the newer value wins.
		return e.Value, nil
	}

	e.Status = domain.StatusResolved
	e.Value = value
	e.Err = nil
	e.FetchedAt = time.Now()
	if e.gen == gen {
		e.Invalidated = false
	}
	return value, nil
}

func attempt(ctx context.Context, fetch Fetcher, o readOptions) (any, error) {
	for i := 0; ; i++ {
		value, err := fetch(ctx)
		if err == nil || i >= o.retries {
			return value, err
		}

		timer := time.NewTimer(o.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, err
		case <-timer.C:
		}
	}
}

// Mutate runs fetch and, only if it succeeds, invalidates every entry matching the descriptor's
// patterns. A failed mutation leaves the cache untouched.
func (c *Coordinator) Mutate(ctx context.Context, desc domain.MutationDescriptor, fetch Fetcher) (any, error) {
	ctx, span := c.tracer.Start(ctx, "mutate "+desc.Name)
	defer span.End()

	value, err := fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.KindOf(err).String())
		return nil, err
	}

	n := c.Invalidate(desc.Invalidates...)
	span.SetAttributes(attribute.Int("query.invalidated", n))
	c.debug(desc.Name + " invalidated " + strconv.Itoa(n) + " entries")
	return value, nil
}

// Invalidate marks every entry whose key starts with one of patterns as stale and returns how
// many were marked. Values are kept for display until the next fetch resolves.
func (c *Coordinator) Invalidate(patterns ...domain.QueryKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		for _, p := range patterns {
			if e.Key.HasPrefix(p) {
				e.Invalidated = true
				e.gen++
				n++
				break
			}
		}
	}
	return n
}

// SetData stores value as the resolved, fresh result of key.
func (c *Coordinator) SetData(key domain.QueryKey, value any) {
	if key.IsZero() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entryLocked(key)
	e.Status = domain.StatusResolved
	e.Value = value
	e.Err = nil
	e.FetchedAt = time.Now()
	e.Invalidated = false
	e.gen++
}

// ClearAll discards every entry. Fetches still in flight complete without touching the cache,
// and later reads start new fetches instead of joining them.
func (c *Coordinator) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.Fetching {
			c.group.Forget(e.Key.String())
		}
	}
	c.entries = make(map[unique.Handle[string]]*entry)
	c.debug("cache cleared")
}

// Entry returns a snapshot of the entry for key.
func (c *Coordinator) Entry(key domain.QueryKey) (domain.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.Handle()]
	if !ok {
		return domain.CacheEntry{}, false
	}
	return e.CacheEntry, true
}

// Keys returns the cached keys sorted by their string form.
func (c *Coordinator) Keys() []domain.QueryKey {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]domain.QueryKey, 0, len(c.entries))
	for _, e := range c.entries {
		keys = append(keys, e.Key)
	}
	slices.SortFunc(keys, func(a, b domain.QueryKey) int {
		return strings.Compare(a.String(), b.String())
	})
	return keys
}

func (c *Coordinator) entryLocked(key domain.QueryKey) *entry {
	e, ok := c.entries[key.Handle()]
	if !ok {
		e = &entry{CacheEntry: domain.CacheEntry{
			Key:        key,
			Status:     domain.StatusIdle,
			StaleAfter: c.defaultStaleAfter,
		}}
		c.entries[key.Handle()] = e
	}
	return e
}

func (c *Coordinator) debug(msg string) {
	if c.logger != nil {
		c.logger.Debug(msg)
	}
}
