// Package presets defines the one-click filter+sort bundles. Whether a
// preset is "active" is never stored: it is re-derived from structural
// equality on every change, so it deactivates the instant the user tweaks
// any control and lights up again if their edits happen to match a bundle.
package presets

import (
	"github.com/example/contract-explorer/internal/domain"
	"github.com/example/contract-explorer/internal/query"
)

// Binding is a named bundle. Build-time constant, never mutated.
type Binding struct {
	ID     string
	Filter query.FilterState
	Sort   query.SortSpec
}

var table = map[domain.EntityType][]Binding{
	domain.EntityVendors: {
		{
			ID:     "highest_risk",
			Filter: query.FilterState{query.FieldRiskLevel: string(domain.RiskHigh)},
			Sort:   query.SortSpec{Field: "risk_score", Order: domain.SortDesc},
		},
		{
			ID:     "frequent_winners",
			Filter: query.FilterState{query.FieldMinContracts: "50"},
			Sort:   query.SortSpec{Field: "total_contracts", Order: domain.SortDesc},
		},
		{
			ID:     "big_money",
			Filter: query.FilterState{query.FieldMinAmount: "1000000"},
			Sort:   query.SortSpec{Field: "total_amount", Order: domain.SortDesc},
		},
	},
	domain.EntityInstitutions: {
		{
			ID:     "highest_risk",
			Filter: query.FilterState{query.FieldRiskLevel: string(domain.RiskHigh)},
			Sort:   query.SortSpec{Field: "risk_score", Order: domain.SortDesc},
		},
		{
			ID:     "largest_buyers",
			Filter: query.FilterState{query.FieldMinAmount: "5000000"},
			Sort:   query.SortSpec{Field: "total_amount", Order: domain.SortDesc},
		},
	},
	domain.EntityTrends: {
		{
			ID:     "recent_activity",
			Filter: query.FilterState{},
			Sort:   query.SortSpec{Field: "period", Order: domain.SortDesc},
		},
	},
}

// Table returns the bindings offered for an entity type.
func Table(entity domain.EntityType) []Binding {
	return table[entity]
}

// Apply resolves a preset id to the filter and sort the caller should
// commit through the URL state store.
func Apply(entity domain.EntityType, id string) (query.FilterState, query.SortSpec, bool) {
	for _, b := range table[entity] {
		if b.ID == id {
			return b.Filter.Clone(), b.Sort, true
		}
	}
	return nil, query.SortSpec{}, false
}

// Current derives the active preset id by structural equality against the
// committed filter and sort. Equality-based, not provenance-based: manual
// edits that coincide exactly with a bundle count as that bundle.
func Current(entity domain.EntityType, filter query.FilterState, sort query.SortSpec) (string, bool) {
	for _, b := range table[entity] {
		if b.Filter.Equal(filter) && b.Sort == sort {
			return b.ID, true
		}
	}
	return "", false
}
