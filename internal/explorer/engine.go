// Package explorer wires the URL state store, the debounced search buffer,
// the query cache, the prefetch scheduler and the preset table into the
// engine behind one browsing view. Every piece of committed state lives in
// the store; the engine itself derives everything else on demand, so there
// is no second copy to drift out of sync.
package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/contract-explorer/internal/cache"
	"github.com/example/contract-explorer/internal/domain"
	"github.com/example/contract-explorer/internal/models"
	"github.com/example/contract-explorer/internal/prefetch"
	"github.com/example/contract-explorer/internal/presets"
	"github.com/example/contract-explorer/internal/query"
	"github.com/example/contract-explorer/internal/sched"
	"github.com/example/contract-explorer/internal/searchbuf"
	"github.com/example/contract-explorer/internal/urlstate"
)

// PageFetcher loads one page from the backend collaborator.
type PageFetcher interface {
	FetchPage(ctx context.Context, req query.PageRequest) (*models.Page, error)
}

// Options configures one engine instance (one browsing view).
type Options struct {
	Entity         domain.EntityType
	Store          urlstate.Store
	Fetcher        PageFetcher
	Cache          *cache.Cache
	DebounceWindow time.Duration
	MinSearchLen   int
	PrefetchDelay  time.Duration
	PageSize       int
	NewTimer       func() sched.Timer
	Logger         *zap.Logger
}

// Snapshot is the render contract: everything the table, pagination
// controls and empty/error states consume, always read for the currently
// active key.
type Snapshot struct {
	Entity       domain.EntityType
	Filter       query.FilterState
	Sort         query.SortSpec
	Page         int
	Key          query.Key
	Rows         []json.RawMessage
	Pagination   *models.Pagination
	Loading      bool
	Revalidating bool
	Err          error
	Search       searchbuf.State
	ActivePreset string
}

type Engine struct {
	entity   domain.EntityType
	store    urlstate.Store
	fetcher  PageFetcher
	cache    *cache.Cache
	prefetch *prefetch.Scheduler
	search   *searchbuf.Buffer
	pageSize int
	logger   *zap.Logger

	ctx   context.Context
	unsub func()

	mu   sync.Mutex
	subs map[int]func()
	next int
}

var defaultSorts = map[domain.EntityType]query.SortSpec{
	domain.EntityVendors:      {Field: "total_amount", Order: domain.SortDesc},
	domain.EntityInstitutions: {Field: "total_amount", Order: domain.SortDesc},
	domain.EntityTrends:       {Field: "period", Order: domain.SortAsc},
}

func New(ctx context.Context, opts Options) *Engine {
	e := &Engine{
		entity:   opts.Entity,
		store:    opts.Store,
		fetcher:  opts.Fetcher,
		cache:    opts.Cache,
		pageSize: opts.PageSize,
		logger:   opts.Logger,
		ctx:      ctx,
		subs:     make(map[int]func()),
	}
	e.prefetch = prefetch.NewScheduler(opts.Cache, opts.PrefetchDelay, opts.NewTimer, opts.Logger)
	e.search = searchbuf.New(opts.DebounceWindow, opts.MinSearchLen, opts.NewTimer(), e.commitSearch, opts.Logger)
	unsubStore := opts.Store.Subscribe(e.onStoreChange)
	unsubCache := e.cache.Watch(func(query.Key) { e.publish() })
	e.unsub = func() {
		unsubStore()
		unsubCache()
	}
	return e
}

// Hydrate seeds the engine from the current address (first mount or deep
// link) and issues the initial fetch.
func (e *Engine) Hydrate() {
	st := e.store.Read()
	e.search.Hydrate(st.Filter[query.FieldSearch])
	e.logger.Info("hydrate",
		zap.String("entity", e.entity.String()),
		zap.Int("page", st.Page),
		zap.Int("filters", len(st.Filter)),
	)
	e.ensure(st)
	e.publish()
}

// Close detaches the engine from the store.
func (e *Engine) Close() {
	if e.unsub != nil {
		e.unsub()
	}
}

// --- user operations ---

// SetFilter commits one filter control change: a navigable history entry
// with the page reset to 1.
func (e *Engine) SetFilter(field, value string) error {
	if !query.ValidFieldValue(field, value) {
		return fmt.Errorf("invalid value %q for filter %q", value, field)
	}
	e.store.Write(urlstate.Patch{Set: query.FilterState{field: value}}, urlstate.WriteOptions{})
	return nil
}

func (e *Engine) RemoveFilter(field string) {
	e.store.Write(urlstate.Patch{Unset: []string{field}}, urlstate.WriteOptions{})
}

func (e *Engine) SetSort(field string, order domain.SortOrder) error {
	if !query.ValidSortField(field) || !order.Valid() {
		return fmt.Errorf("invalid sort %q %q", field, order)
	}
	s := query.SortSpec{Field: field, Order: order}
	e.store.Write(urlstate.Patch{Sort: &s}, urlstate.WriteOptions{})
	return nil
}

// SetPage navigates to a page without resetting anything else.
func (e *Engine) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	e.store.Write(urlstate.Patch{Page: &page}, urlstate.WriteOptions{KeepPage: true})
}

// Keystroke feeds the search input's new value into the debounce buffer.
// Nothing is committed until the buffer quiesces.
func (e *Engine) Keystroke(value string) {
	e.search.Keystroke(value)
	e.publish()
}

// ClearSearch empties the box and drops any committed search immediately,
// bypassing the debounce window.
func (e *Engine) ClearSearch() {
	e.search.Clear()
	e.publish()
}

// ClearAllFilters resets every filter field in one history entry. The
// search buffer is reset silently first so its commit path does not write
// a second entry.
func (e *Engine) ClearAllFilters() {
	e.search.Hydrate("")
	e.store.Write(urlstate.Patch{Unset: query.FilterFields()}, urlstate.WriteOptions{})
}

// ApplyPreset replaces the whole filter+sort with the named bundle. The
// search box is cleared: a preset is a wholesale filter replacement, and
// applying one is an explicit user action.
func (e *Engine) ApplyPreset(id string) error {
	filter, sort, ok := presets.Apply(e.entity, id)
	if !ok {
		return fmt.Errorf("unknown preset %q for %s", id, e.entity)
	}
	e.search.Hydrate("")
	unset := make([]string, 0)
	for _, f := range query.FilterFields() {
		if _, kept := filter[f]; !kept {
			unset = append(unset, f)
		}
	}
	e.logger.Info("preset applied", zap.String("preset", id))
	e.store.Write(urlstate.Patch{Set: filter, Unset: unset, Sort: &sort}, urlstate.WriteOptions{})
	return nil
}

// HoverPage schedules a prefetch for another page of the current result
// set. The returned cancel must be called on pointer-leave.
func (e *Engine) HoverPage(page int) (cancel func()) {
	st := e.store.Read().Clone()
	st.Page = page
	return e.Hover(e.requestFor(st))
}

// Hover schedules a prefetch for an arbitrary request (a row's detail
// view, another tab's default listing).
func (e *Engine) Hover(req query.PageRequest) (cancel func()) {
	key := query.BuildKey(req)
	return e.prefetch.Schedule(e.ctx, key, func(ctx context.Context) (*models.Page, error) {
		return e.fetcher.FetchPage(ctx, req)
	})
}

// Retry re-issues the fetch for the current key after an error.
func (e *Engine) Retry() {
	e.ensure(e.store.Read())
}

// --- render contract ---

// OnChange registers a callback fired after any state transition the
// renderer could observe. Returns an unsubscribe.
func (e *Engine) OnChange(fn func()) func() {
	e.mu.Lock()
	id := e.next
	e.next++
	e.subs[id] = fn
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

// Snapshot reads the render state for the currently active key. A late
// response for an abandoned key sits in the cache but never shows here.
func (e *Engine) Snapshot() Snapshot {
	st := e.store.Read()
	req := e.requestFor(st)
	key := query.BuildKey(req)

	snap := Snapshot{
		Entity: e.entity,
		Filter: st.Filter,
		Sort:   req.Sort,
		Page:   st.Page,
		Key:    key,
		Search: e.search.State(),
	}
	if id, ok := presets.Current(e.entity, st.Filter, req.Sort); ok {
		snap.ActivePreset = id
	}
	entry, ok := e.cache.Get(key)
	if !ok {
		return snap
	}
	snap.Loading = entry.State == cache.StateLoading
	snap.Revalidating = entry.Revalidating
	snap.Err = entry.Err
	if entry.Data != nil {
		snap.Rows = entry.Data.Rows
		p := entry.Data.Pagination
		snap.Pagination = &p
	}
	return snap
}

// --- internals ---

func (e *Engine) requestFor(st urlstate.State) query.PageRequest {
	sort := st.Sort
	if sort.IsZero() {
		sort = defaultSorts[e.entity]
	}
	return query.PageRequest{
		Entity:   e.entity,
		Filter:   st.Filter,
		Sort:     sort,
		Page:     st.Page,
		PageSize: e.pageSize,
	}
}

func (e *Engine) commitSearch(value string) {
	// Debounce commits replace the current history entry; back/forward
	// should not replay every keystroke burst.
	if value == "" {
		e.store.Write(urlstate.Patch{Unset: []string{query.FieldSearch}}, urlstate.WriteOptions{Replace: true})
		return
	}
	e.store.Write(urlstate.Patch{Set: query.FilterState{query.FieldSearch: value}}, urlstate.WriteOptions{Replace: true})
}

func (e *Engine) onStoreChange(st urlstate.State) {
	e.search.SyncCommitted(st.Filter[query.FieldSearch])
	e.ensure(st)
	e.publish()
}

func (e *Engine) ensure(st urlstate.State) {
	req := e.requestFor(st)
	key := query.BuildKey(req)
	e.cache.Ensure(e.ctx, key, func(ctx context.Context) (*models.Page, error) {
		return e.fetcher.FetchPage(ctx, req)
	})
}

func (e *Engine) publish() {
	e.mu.Lock()
	subs := make([]func(), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	e.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
