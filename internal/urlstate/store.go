// Package urlstate owns the canonical filter/sort/page state and its
// serialization into the navigable address's query string. Nothing else in
// the engine touches history directly.
package urlstate

import (
	"net/url"
	"strconv"
	"sync"

	"github.com/example/contract-explorer/internal/domain"
	"github.com/example/contract-explorer/internal/query"
)

// State is the committed browsing state. Filter information never exists
// only in memory once committed: State round-trips through the address.
type State struct {
	Filter query.FilterState
	Sort   query.SortSpec
	Page   int
}

func (s State) Clone() State {
	s.Filter = s.Filter.Clone()
	return s
}

// Patch is a partial update merged into the current state.
type Patch struct {
	Set    query.FilterState // fields to set
	Unset  []string          // fields to remove
	Sort   *query.SortSpec
	Page   *int
}

// WriteOptions: the zero value is the default for filter/sort changes —
// a new navigable history entry with the page forced back to 1.
type WriteOptions struct {
	// Replace rewrites the current history entry instead of pushing a new
	// one. Used for incidental updates (search-debounce commits) so
	// back/forward is not polluted by keystroke-driven changes.
	Replace bool
	// KeepPage suppresses the reset-to-1 default. Only explicit page
	// navigation sets it.
	KeepPage bool
}

// Store is the single source of truth for State. Injectable so tests can
// run against the in-memory History instead of a real location bar.
type Store interface {
	Read() State
	Write(p Patch, opts WriteOptions)
	Subscribe(fn func(State)) (unsubscribe func())
}

// --- in-memory history implementation ---

// History models the address bar: a stack of query strings with a cursor.
type History struct {
	mu      sync.Mutex
	entries []string
	idx     int
	subs    map[int]func(State)
	nextSub int
}

func NewHistory(initial string) *History {
	return &History{
		entries: []string{initial},
		subs:    make(map[int]func(State)),
	}
}

// Read parses the current entry. Unknown parameters and values outside a
// field's domain are dropped, never surfaced: a shared or bookmarked link
// degrades to fewer constraints instead of an error.
func (h *History) Read() State {
	h.mu.Lock()
	raw := h.entries[h.idx]
	h.mu.Unlock()
	return Parse(raw)
}

func (h *History) Write(p Patch, opts WriteOptions) {
	h.mu.Lock()
	st := Parse(h.entries[h.idx])
	st = merge(st, p, opts)
	raw := Encode(st)
	if opts.Replace {
		h.entries[h.idx] = raw
	} else {
		h.entries = append(h.entries[:h.idx+1], raw)
		h.idx = len(h.entries) - 1
	}
	subs := h.snapshotSubs()
	h.mu.Unlock()

	for _, fn := range subs {
		fn(st.Clone())
	}
}

func (h *History) Subscribe(fn func(State)) func() {
	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = fn
	h.mu.Unlock()
	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Back moves the cursor one entry back, if possible, and notifies.
func (h *History) Back() bool {
	h.mu.Lock()
	if h.idx == 0 {
		h.mu.Unlock()
		return false
	}
	h.idx--
	st := Parse(h.entries[h.idx])
	subs := h.snapshotSubs()
	h.mu.Unlock()

	for _, fn := range subs {
		fn(st.Clone())
	}
	return true
}

// Len reports how many navigable entries exist.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Raw returns the current entry's query string.
func (h *History) Raw() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.idx]
}

func (h *History) snapshotSubs() []func(State) {
	out := make([]func(State), 0, len(h.subs))
	for _, fn := range h.subs {
		out = append(out, fn)
	}
	return out
}

// --- merge / parse / encode ---

func merge(st State, p Patch, opts WriteOptions) State {
	st = st.Clone()
	if st.Filter == nil {
		st.Filter = query.FilterState{}
	}
	for k, v := range p.Set {
		st.Filter[k] = v
	}
	for _, k := range p.Unset {
		delete(st.Filter, k)
	}
	if p.Sort != nil {
		st.Sort = *p.Sort
	}
	if p.Page != nil {
		st.Page = *p.Page
	} else if !opts.KeepPage {
		st.Page = 1
	}
	if st.Page < 1 {
		st.Page = 1
	}
	return st
}

// Parse decodes a query string permissively.
func Parse(raw string) State {
	st := State{Filter: query.FilterState{}, Page: 1}
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return st
	}
	for _, field := range query.FilterFields() {
		v := vals.Get(field)
		if v != "" && query.ValidFieldValue(field, v) {
			st.Filter[field] = v
		}
	}
	if by := vals.Get("sort_by"); by != "" && query.ValidSortField(by) {
		if order, ok := domain.ParseSortOrder(vals.Get("sort_order")); ok {
			st.Sort = query.SortSpec{Field: by, Order: order}
		}
	}
	if n, err := strconv.Atoi(vals.Get("page")); err == nil && n >= 1 {
		st.Page = n
	}
	return st
}

// Encode serializes a State. Inverse of Parse for valid states.
func Encode(st State) string {
	v := url.Values{}
	for k, val := range st.Filter {
		v.Set(k, val)
	}
	if !st.Sort.IsZero() {
		v.Set("sort_by", st.Sort.Field)
		v.Set("sort_order", st.Sort.Order.String())
	}
	if st.Page > 1 {
		v.Set("page", strconv.Itoa(st.Page))
	}
	return v.Encode()
}
