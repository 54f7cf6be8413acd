package dataset

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/contract-explorer/internal/domain"
	"github.com/example/contract-explorer/internal/models"
	"github.com/example/contract-explorer/internal/query"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return Generate(42, 100)
}

func vendorsReq(filter query.FilterState, sort query.SortSpec, page, size int) query.PageRequest {
	return query.PageRequest{
		Entity:   domain.EntityVendors,
		Filter:   filter,
		Sort:     sort,
		Page:     page,
		PageSize: size,
	}
}

func decodeVendors(t *testing.T, page *models.Page) []models.Vendor {
	t.Helper()
	out := make([]models.Vendor, 0, len(page.Rows))
	for _, raw := range page.Rows {
		var v models.Vendor
		require.NoError(t, json.Unmarshal(raw, &v))
		out = append(out, v)
	}
	return out
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(7, 50)
	b := Generate(7, 50)
	av, ai, at := a.Counts()
	bv, bi, bt := b.Counts()
	assert.Equal(t, av, bv)
	assert.Equal(t, ai, bi)
	assert.Equal(t, at, bt)
	assert.Equal(t, 50, av)
	assert.Equal(t, 48, at, "four years of monthly points")
}

func TestQueryPagination(t *testing.T) {
	s := testStore(t)
	page, err := s.Query(vendorsReq(query.FilterState{}, query.SortSpec{Field: "name", Order: domain.SortAsc}, 1, 30))
	require.NoError(t, err)

	assert.Len(t, page.Rows, 30)
	assert.Equal(t, 100, page.Pagination.Total)
	assert.Equal(t, 4, page.Pagination.TotalPages)

	last, err := s.Query(vendorsReq(query.FilterState{}, query.SortSpec{Field: "name", Order: domain.SortAsc}, 4, 30))
	require.NoError(t, err)
	assert.Len(t, last.Rows, 10)

	beyond, err := s.Query(vendorsReq(query.FilterState{}, query.SortSpec{Field: "name", Order: domain.SortAsc}, 99, 30))
	require.NoError(t, err)
	assert.Empty(t, beyond.Rows)
	assert.Equal(t, 100, beyond.Pagination.Total, "total survives an out-of-range page")
}

func TestQuerySortOrder(t *testing.T) {
	s := testStore(t)
	page, err := s.Query(vendorsReq(query.FilterState{}, query.SortSpec{Field: "risk_score", Order: domain.SortDesc}, 1, 100))
	require.NoError(t, err)

	vendors := decodeVendors(t, page)
	for i := 1; i < len(vendors); i++ {
		assert.GreaterOrEqual(t, vendors[i-1].RiskScore, vendors[i].RiskScore)
	}
}

func TestQueryRiskFilter(t *testing.T) {
	s := testStore(t)
	page, err := s.Query(vendorsReq(query.FilterState{query.FieldRiskLevel: "high"}, query.SortSpec{Field: "name", Order: domain.SortAsc}, 1, 100))
	require.NoError(t, err)

	vendors := decodeVendors(t, page)
	require.NotEmpty(t, vendors)
	for _, v := range vendors {
		assert.Equal(t, "high", v.RiskLevel)
	}
	assert.Equal(t, len(vendors), page.Pagination.Total)
}

func TestQuerySearchFilter(t *testing.T) {
	s := testStore(t)
	page, err := s.Query(vendorsReq(query.FilterState{query.FieldSearch: "grupo"}, query.SortSpec{Field: "name", Order: domain.SortAsc}, 1, 100))
	require.NoError(t, err)

	for _, v := range decodeVendors(t, page) {
		assert.Contains(t, strings.ToLower(v.Name), "grupo")
	}
}

func TestQueryMinFilters(t *testing.T) {
	s := testStore(t)
	page, err := s.Query(vendorsReq(
		query.FilterState{query.FieldMinContracts: "100", query.FieldMinAmount: "1000000"},
		query.SortSpec{Field: "total_amount", Order: domain.SortDesc}, 1, 100))
	require.NoError(t, err)

	for _, v := range decodeVendors(t, page) {
		assert.GreaterOrEqual(t, v.TotalContracts, 100)
		assert.GreaterOrEqual(t, v.TotalAmount, 1_000_000.0)
	}
}

func TestQueryTrendsYear(t *testing.T) {
	s := testStore(t)
	page, err := s.Query(query.PageRequest{
		Entity:   domain.EntityTrends,
		Filter:   query.FilterState{query.FieldYear: "2024"},
		Sort:     query.SortSpec{Field: "period", Order: domain.SortAsc},
		Page:     1,
		PageSize: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Pagination.Total)

	var first models.TrendPoint
	require.NoError(t, json.Unmarshal(page.Rows[0], &first))
	assert.Equal(t, "2024-01", first.Period)
}

func TestQueryUnknownEntity(t *testing.T) {
	s := testStore(t)
	_, err := s.Query(query.PageRequest{Entity: domain.EntityType("contracts")})
	assert.Error(t, err)
}
