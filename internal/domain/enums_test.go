package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEntityType(t *testing.T) {
	cases := []struct {
		in   string
		want EntityType
		ok   bool
	}{
		{"vendors", EntityVendors, true},
		{" Institutions ", EntityInstitutions, true},
		{"TRENDS", EntityTrends, true},
		{"contracts", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseEntityType(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseRiskLevel(t *testing.T) {
	got, ok := ParseRiskLevel("Critical")
	assert.True(t, ok)
	assert.Equal(t, RiskCritical, got)

	_, ok = ParseRiskLevel("extreme")
	assert.False(t, ok)
}

func TestParseSortOrder(t *testing.T) {
	got, ok := ParseSortOrder("DESC")
	assert.True(t, ok)
	assert.Equal(t, SortDesc, got)

	_, ok = ParseSortOrder("")
	assert.False(t, ok)
	assert.False(t, SortOrder("sideways").Valid())
}
