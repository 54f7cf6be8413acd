package urlstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/contract-explorer/internal/domain"
	"github.com/example/contract-explorer/internal/query"
)

func TestReadEmpty(t *testing.T) {
	h := NewHistory("")
	st := h.Read()
	assert.Empty(t, st.Filter)
	assert.True(t, st.Sort.IsZero())
	assert.Equal(t, 1, st.Page)
}

func TestWriteReadRoundTrip(t *testing.T) {
	h := NewHistory("")
	sort := query.SortSpec{Field: "risk_score", Order: domain.SortDesc}
	h.Write(Patch{
		Set:  query.FilterState{"risk_level": "high", "search": "pemex"},
		Sort: &sort,
	}, WriteOptions{})

	st := h.Read()
	assert.Equal(t, query.FilterState{"risk_level": "high", "search": "pemex"}, st.Filter)
	assert.Equal(t, sort, st.Sort)
	assert.Equal(t, 1, st.Page)
}

func TestPermissiveParse(t *testing.T) {
	// risk_level out of enum, page garbage, an unknown param, and one
	// valid field: only the valid field survives.
	h := NewHistory("risk_level=extreme&page=banana&debug=1&sector_id=3")
	st := h.Read()
	assert.Equal(t, query.FilterState{"sector_id": "3"}, st.Filter)
	assert.Equal(t, 1, st.Page)
	assert.True(t, st.Sort.IsZero())
}

func TestSortRequiresValidOrder(t *testing.T) {
	h := NewHistory("sort_by=risk_score&sort_order=sideways")
	assert.True(t, h.Read().Sort.IsZero())

	h = NewHistory("sort_by=nonsense&sort_order=asc")
	assert.True(t, h.Read().Sort.IsZero())

	h = NewHistory("sort_by=risk_score&sort_order=desc")
	assert.Equal(t, query.SortSpec{Field: "risk_score", Order: domain.SortDesc}, h.Read().Sort)
}

func TestFilterWriteResetsPage(t *testing.T) {
	h := NewHistory("page=4&risk_level=high")
	require.Equal(t, 4, h.Read().Page)

	h.Write(Patch{Set: query.FilterState{"sector_id": "2"}}, WriteOptions{})
	assert.Equal(t, 1, h.Read().Page)
	assert.Equal(t, "high", h.Read().Filter["risk_level"], "other fields kept")
}

func TestPageWriteKeepsFilters(t *testing.T) {
	h := NewHistory("risk_level=high")
	page := 3
	h.Write(Patch{Page: &page}, WriteOptions{KeepPage: true})
	st := h.Read()
	assert.Equal(t, 3, st.Page)
	assert.Equal(t, "high", st.Filter["risk_level"])
}

func TestReplaceVsPush(t *testing.T) {
	h := NewHistory("")
	require.Equal(t, 1, h.Len())

	// Explicit control change: navigable entry.
	h.Write(Patch{Set: query.FilterState{"risk_level": "high"}}, WriteOptions{})
	assert.Equal(t, 2, h.Len())

	// Debounce commit: rewrites in place.
	h.Write(Patch{Set: query.FilterState{"search": "pemex"}}, WriteOptions{Replace: true})
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "pemex", h.Read().Filter["search"])

	// Back drops the search+risk entry entirely.
	require.True(t, h.Back())
	st := h.Read()
	assert.Empty(t, st.Filter)
	assert.False(t, h.Back(), "already at the oldest entry")
}

func TestUnset(t *testing.T) {
	h := NewHistory("risk_level=high&search=pemex")
	h.Write(Patch{Unset: []string{"search"}}, WriteOptions{})
	st := h.Read()
	_, ok := st.Filter["search"]
	assert.False(t, ok)
	assert.Equal(t, "high", st.Filter["risk_level"])
}

func TestSubscribe(t *testing.T) {
	h := NewHistory("")
	var got []State
	unsub := h.Subscribe(func(st State) { got = append(got, st) })

	h.Write(Patch{Set: query.FilterState{"risk_level": "low"}}, WriteOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, "low", got[0].Filter["risk_level"])

	h.Back()
	require.Len(t, got, 2)
	assert.Empty(t, got[1].Filter)

	unsub()
	h.Write(Patch{Set: query.FilterState{"sector_id": "1"}}, WriteOptions{})
	assert.Len(t, got, 2, "no notifications after unsubscribe")
}

func TestEncodeParseInverse(t *testing.T) {
	st := State{
		Filter: query.FilterState{"search": "grupo norte", "min_amount": "1000000"},
		Sort:   query.SortSpec{Field: "total_amount", Order: domain.SortDesc},
		Page:   7,
	}
	assert.Equal(t, st, Parse(Encode(st)))
}
