// Package cache is the synchronization point between renders, navigation
// and the network. Entries are keyed strictly on request content, so a
// slow response for an abandoned filter combination can never masquerade
// as the current result: the renderer always reads by the active key.
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/example/contract-explorer/internal/models"
	"github.com/example/contract-explorer/internal/query"
	"github.com/example/contract-explorer/internal/sched"
)

// EntryState is the fetch lifecycle of one cache entry.
type EntryState int

const (
	StateIdle EntryState = iota
	StateLoading
	StateSuccess
	StateError
)

func (s EntryState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is a read-only snapshot of one cached page.
type Entry struct {
	Key       query.Key
	Data      *models.Page
	Err       error
	FetchedAt time.Time
	State     EntryState
	// Revalidating is set while stale Success data is being served and a
	// background refetch is in flight.
	Revalidating bool
}

// Fetcher loads the page for a key. Invoked at most once per key at a time.
type Fetcher func(ctx context.Context) (*models.Page, error)

type entry struct {
	key        query.Key
	data       *models.Page
	err        error
	fetchedAt  time.Time
	lastAccess time.Time
	state      EntryState
	inflight   bool
}

// Cache holds query results with request de-duplication, a staleness
// window (stale-while-revalidate) and last-access retention eviction.
type Cache struct {
	mu        sync.Mutex
	entries   map[query.Key]*entry
	group     singleflight.Group
	staleTime time.Duration
	retention time.Duration
	clock     sched.Clock
	logger    *zap.Logger
	watchers  map[int]func(query.Key)
	nextWatch int
}

func New(staleTime, retention time.Duration, clock sched.Clock, logger *zap.Logger) *Cache {
	return &Cache{
		entries:   make(map[query.Key]*entry),
		staleTime: staleTime,
		retention: retention,
		clock:     clock,
		logger:    logger,
		watchers:  make(map[int]func(query.Key)),
	}
}

// Watch registers a callback invoked (outside the cache lock) after a
// fetch settles a key. Each engine sharing the cache uses it to republish
// its snapshot. Returns an unsubscribe.
func (c *Cache) Watch(fn func(query.Key)) func() {
	c.mu.Lock()
	id := c.nextWatch
	c.nextWatch++
	c.watchers[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.watchers, id)
		c.mu.Unlock()
	}
}

// Get returns a snapshot for the key without triggering any fetch.
func (c *Cache) Get(key query.Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	e.lastAccess = c.clock.Now()
	return c.snapshot(e), true
}

// Ensure returns the entry for key, starting a fetch when needed.
//
// The de-duplication check and the Loading transition happen atomically
// under the cache lock before any fetch goroutine starts, so two
// concurrent callers can never both decide to issue the same request.
// Stale Success data is returned synchronously while the refetch runs in
// the background; the UI never blocks on data it already has.
func (c *Cache) Ensure(ctx context.Context, key query.Key, fetch Fetcher) Entry {
	now := c.clock.Now()

	c.mu.Lock()
	c.evictLocked(now)
	e, ok := c.entries[key]
	if !ok {
		e = &entry{key: key, state: StateIdle}
		c.entries[key] = e
	}
	e.lastAccess = now

	if e.inflight {
		snap := c.snapshot(e)
		c.mu.Unlock()
		return snap
	}
	if e.state == StateSuccess && now.Sub(e.fetchedAt) < c.staleTime {
		snap := c.snapshot(e)
		c.mu.Unlock()
		c.logger.Debug("cache hit", zap.String("key", string(key)))
		return snap
	}

	e.inflight = true
	if e.state != StateSuccess {
		// First load (or retry after error): no data to serve yet.
		e.state = StateLoading
		e.err = nil
	}
	snap := c.snapshot(e)
	c.mu.Unlock()

	if snap.State == StateSuccess {
		c.logger.Debug("cache stale, revalidating", zap.String("key", string(key)))
	} else {
		c.logger.Debug("cache miss, fetching", zap.String("key", string(key)))
	}

	go func() {
		// singleflight collapses any racing schedule paths (render fetch
		// vs. fired prefetch) onto one fetcher invocation per key. The
		// entry settles only after the call is forgotten: a watcher that
		// reacts to the settle by ensuring the same key again must start a
		// fresh fetch, not attach to this finished one.
		v, err, _ := c.group.Do(string(key), func() (any, error) {
			return fetch(ctx)
		})
		c.group.Forget(string(key))
		data, _ := v.(*models.Page)
		c.complete(key, data, err)
	}()
	return snap
}

func (c *Cache) complete(key query.Key, data *models.Page, err error) {
	now := c.clock.Now()

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		// Evicted while in flight; late responses are still worth keeping
		// for back-navigation.
		e = &entry{key: key}
		c.entries[key] = e
	}
	e.inflight = false
	e.fetchedAt = now
	e.lastAccess = now
	if err != nil {
		// Prior data, if any, stays untouched; only the error surfaces.
		e.err = err
		e.state = StateError
	} else {
		e.data = data
		e.err = nil
		e.state = StateSuccess
	}
	watchers := make([]func(query.Key), 0, len(c.watchers))
	for _, fn := range c.watchers {
		watchers = append(watchers, fn)
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("fetch failed", zap.String("key", string(key)), zap.Error(err))
	} else {
		c.logger.Debug("fetch complete", zap.String("key", string(key)))
	}
	for _, fn := range watchers {
		fn(key)
	}
}

// Len reports how many entries are currently retained.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// EvictExpired drops entries unused for longer than the retention window.
// Ensure also runs this opportunistically.
func (c *Cache) EvictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked(c.clock.Now())
}

func (c *Cache) evictLocked(now time.Time) {
	for k, e := range c.entries {
		if e.inflight {
			continue
		}
		if now.Sub(e.lastAccess) > c.retention {
			delete(c.entries, k)
			c.logger.Debug("cache evict", zap.String("key", string(k)))
		}
	}
}

func (c *Cache) snapshot(e *entry) Entry {
	return Entry{
		Key:          e.key,
		Data:         e.data,
		Err:          e.err,
		FetchedAt:    e.fetchedAt,
		State:        e.state,
		Revalidating: e.inflight && e.state == StateSuccess,
	}
}
