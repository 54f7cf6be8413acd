package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/contract-explorer/internal/domain"
	"github.com/example/contract-explorer/internal/query"
)

func TestApplyCurrentRoundTrip(t *testing.T) {
	for _, entity := range []domain.EntityType{domain.EntityVendors, domain.EntityInstitutions, domain.EntityTrends} {
		for _, b := range Table(entity) {
			filter, sort, ok := Apply(entity, b.ID)
			require.True(t, ok, "%s/%s", entity, b.ID)

			id, active := Current(entity, filter, sort)
			assert.True(t, active)
			assert.Equal(t, b.ID, id, "Current(Apply(id)) must return id")
		}
	}
}

func TestUnknownPreset(t *testing.T) {
	_, _, ok := Apply(domain.EntityVendors, "does_not_exist")
	assert.False(t, ok)
}

func TestManualTweakDeactivates(t *testing.T) {
	filter, sort, ok := Apply(domain.EntityVendors, "highest_risk")
	require.True(t, ok)

	// Scenario: the user then changes min_contracts by hand. The preset's
	// risk fields survive, but the bundle no longer matches.
	filter[query.FieldMinContracts] = "10"
	_, active := Current(domain.EntityVendors, filter, sort)
	assert.False(t, active)
	assert.Equal(t, "high", filter[query.FieldRiskLevel], "preset fields remain in the filter")
}

func TestSortChangeDeactivates(t *testing.T) {
	filter, sort, ok := Apply(domain.EntityVendors, "highest_risk")
	require.True(t, ok)

	sort.Order = domain.SortAsc
	_, active := Current(domain.EntityVendors, filter, sort)
	assert.False(t, active)
}

func TestCoincidentalEqualityActivates(t *testing.T) {
	// Manual edits that land exactly on a bundle count as that bundle:
	// equality-based, not provenance-based.
	filter := query.FilterState{query.FieldRiskLevel: "high"}
	sort := query.SortSpec{Field: "risk_score", Order: domain.SortDesc}
	id, active := Current(domain.EntityVendors, filter, sort)
	assert.True(t, active)
	assert.Equal(t, "highest_risk", id)
}

func TestApplyReturnsClone(t *testing.T) {
	f1, _, _ := Apply(domain.EntityVendors, "highest_risk")
	f1[query.FieldSectorID] = "9"

	f2, _, _ := Apply(domain.EntityVendors, "highest_risk")
	_, polluted := f2[query.FieldSectorID]
	assert.False(t, polluted, "the static table must never be mutated")
}
