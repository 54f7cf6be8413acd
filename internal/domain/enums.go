package domain

import "strings"

// EntityType is the closed set of browsable entity collections.
type EntityType string

const (
	EntityVendors      EntityType = "vendors"
	EntityInstitutions EntityType = "institutions"
	EntityTrends       EntityType = "trends"
)

func (e EntityType) String() string { return string(e) }
func (e EntityType) Valid() bool {
	switch e {
	case EntityVendors, EntityInstitutions, EntityTrends:
		return true
	default:
		return false
	}
}

func ParseEntityType(s string) (EntityType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vendors":
		return EntityVendors, true
	case "institutions":
		return EntityInstitutions, true
	case "trends":
		return EntityTrends, true
	default:
		return "", false
	}
}

// RiskLevel buckets the backend's risk score into a filterable enum.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

func (r RiskLevel) String() string { return string(r) }
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	default:
		return false
	}
}

func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, true
	case "medium":
		return RiskMedium, true
	case "high":
		return RiskHigh, true
	case "critical":
		return RiskCritical, true
	default:
		return "", false
	}
}

// SortOrder for list queries.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) String() string { return string(o) }
func (o SortOrder) Valid() bool    { return o == SortAsc || o == SortDesc }

func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return SortAsc, true
	case "desc":
		return SortDesc, true
	default:
		return "", false
	}
}
