package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/example/contract-explorer/internal/domain"
)

// FilterState maps filter-field name to its value. Absent key means
// unconstrained. Once committed it is always serializable to the address.
type FilterState map[string]string

func (f FilterState) Clone() FilterState {
	out := make(FilterState, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func (f FilterState) Equal(other FilterState) bool {
	if len(f) != len(other) {
		return false
	}
	for k, v := range f {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// SortSpec: exactly one active per entity type. Zero value means
// "no explicit sort".
type SortSpec struct {
	Field string
	Order domain.SortOrder
}

func (s SortSpec) IsZero() bool { return s.Field == "" }

// PageRequest identifies one fetchable page. Immutable value.
type PageRequest struct {
	Entity   domain.EntityType
	Filter   FilterState
	Sort     SortSpec
	Page     int
	PageSize int
}

// Key is the canonical identity of a PageRequest. Comparable, usable as a
// map key, order-independent in the filter fields.
type Key string

// BuildKey derives the canonical key. Filter fields are serialized in
// sorted order so construction order never affects the result.
func BuildKey(req PageRequest) Key {
	fields := make([]string, 0, len(req.Filter))
	for k := range req.Filter {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString(req.Entity.String())
	b.WriteByte('|')
	for i, k := range fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(req.Filter[k]))
	}
	b.WriteByte('|')
	if !req.Sort.IsZero() {
		b.WriteString(req.Sort.Field)
		b.WriteByte(':')
		b.WriteString(req.Sort.Order.String())
	}
	b.WriteString("|p=")
	b.WriteString(strconv.Itoa(req.Page))
	b.WriteString("|n=")
	b.WriteString(strconv.Itoa(req.PageSize))
	return Key(b.String())
}

// Params encodes the request as collaborator query parameters.
func (req PageRequest) Params() url.Values {
	v := url.Values{}
	for k, val := range req.Filter {
		v.Set(k, val)
	}
	if !req.Sort.IsZero() {
		v.Set("sort_by", req.Sort.Field)
		v.Set("sort_order", req.Sort.Order.String())
	}
	v.Set("page", strconv.Itoa(req.Page))
	v.Set("per_page", strconv.Itoa(req.PageSize))
	return v
}

// --- Filter field registry ---

// FieldSearch is special-cased by the debounced search buffer; the rest are
// committed directly by filter controls.
const (
	FieldSearch       = "search"
	FieldRiskLevel    = "risk_level"
	FieldSectorID     = "sector_id"
	FieldMinContracts = "min_contracts"
	FieldMinAmount    = "min_amount"
	FieldYear         = "year"
)

// ValidFieldValue reports whether a filter field name and value are within
// the expected domain. Callers parsing an address drop anything invalid
// rather than erroring, so shared links degrade gracefully.
func ValidFieldValue(field, value string) bool {
	switch field {
	case FieldSearch:
		return value != ""
	case FieldRiskLevel:
		_, ok := domain.ParseRiskLevel(value)
		return ok
	case FieldSectorID:
		n, err := strconv.Atoi(value)
		return err == nil && n >= 0
	case FieldMinContracts:
		n, err := strconv.Atoi(value)
		return err == nil && n >= 0
	case FieldMinAmount:
		f, err := strconv.ParseFloat(value, 64)
		return err == nil && f >= 0
	case FieldYear:
		n, err := strconv.Atoi(value)
		return err == nil && n >= 1990 && n <= 2100
	default:
		return false
	}
}

// FilterFields lists the recognized filter parameter names.
func FilterFields() []string {
	return []string{FieldSearch, FieldRiskLevel, FieldSectorID, FieldMinContracts, FieldMinAmount, FieldYear}
}

var sortFields = map[string]bool{
	"name":            true,
	"total_contracts": true,
	"total_amount":    true,
	"risk_score":      true,
	"period":          true,
	"contract_count":  true,
	"avg_risk_score":  true,
}

// ValidSortField reports whether a sort_by value is recognized.
func ValidSortField(field string) bool { return sortFields[field] }
