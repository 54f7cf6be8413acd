// Package dataset is the in-memory data service behind the mock backend:
// a synthetic procurement dataset queried with the same filter, sort and
// pagination semantics the real collaborator exposes.
package dataset

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/contract-explorer/internal/domain"
	"github.com/example/contract-explorer/internal/models"
	"github.com/example/contract-explorer/internal/query"
)

type Store struct {
	vendors      []models.Vendor
	institutions []models.Institution
	trends       []models.TrendPoint
}

// Counts reports the dataset sizes, for startup logging.
func (s *Store) Counts() (vendors, institutions, trends int) {
	return len(s.vendors), len(s.institutions), len(s.trends)
}

// Query resolves one page. Filter values outside a field's domain are
// treated as unconstrained, matching the collaborator's permissive
// contract for shared links.
func (s *Store) Query(req query.PageRequest) (*models.Page, error) {
	switch req.Entity {
	case domain.EntityVendors:
		return pageOf(filterVendors(s.vendors, req.Filter), req, compareVendors)
	case domain.EntityInstitutions:
		return pageOf(filterInstitutions(s.institutions, req.Filter), req, compareInstitutions)
	case domain.EntityTrends:
		return pageOf(filterTrends(s.trends, req.Filter), req, compareTrends)
	default:
		return nil, fmt.Errorf("unknown entity %q", req.Entity)
	}
}

// --- filtering ---

func filterVendors(rows []models.Vendor, f query.FilterState) []models.Vendor {
	out := make([]models.Vendor, 0, len(rows))
	for _, r := range rows {
		if !matchCommon(f, r.Name, r.SectorID, r.TotalContracts, r.TotalAmount, r.RiskLevel) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func filterInstitutions(rows []models.Institution, f query.FilterState) []models.Institution {
	out := make([]models.Institution, 0, len(rows))
	for _, r := range rows {
		if !matchCommon(f, r.Name, r.SectorID, r.TotalContracts, r.TotalAmount, r.RiskLevel) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func filterTrends(rows []models.TrendPoint, f query.FilterState) []models.TrendPoint {
	out := make([]models.TrendPoint, 0, len(rows))
	for _, r := range rows {
		if y, ok := f[query.FieldYear]; ok && query.ValidFieldValue(query.FieldYear, y) {
			if !strings.HasPrefix(r.Period, y+"-") {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func matchCommon(f query.FilterState, name string, sectorID, contracts int, amount float64, riskLevel string) bool {
	if v, ok := f[query.FieldSearch]; ok && v != "" {
		if !strings.Contains(strings.ToLower(name), strings.ToLower(v)) {
			return false
		}
	}
	if v, ok := f[query.FieldRiskLevel]; ok {
		if level, valid := domain.ParseRiskLevel(v); valid && riskLevel != level.String() {
			return false
		}
	}
	if v, ok := f[query.FieldSectorID]; ok {
		if n, err := strconv.Atoi(v); err == nil && sectorID != n {
			return false
		}
	}
	if v, ok := f[query.FieldMinContracts]; ok {
		if n, err := strconv.Atoi(v); err == nil && contracts < n {
			return false
		}
	}
	if v, ok := f[query.FieldMinAmount]; ok {
		if min, err := strconv.ParseFloat(v, 64); err == nil && amount < min {
			return false
		}
	}
	return true
}

// --- sorting ---

func compareVendors(a, b models.Vendor, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "total_contracts":
		return cmpInt(a.TotalContracts, b.TotalContracts)
	case "risk_score":
		return cmpFloat(a.RiskScore, b.RiskScore)
	default: // total_amount
		return cmpFloat(a.TotalAmount, b.TotalAmount)
	}
}

func compareInstitutions(a, b models.Institution, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "total_contracts":
		return cmpInt(a.TotalContracts, b.TotalContracts)
	case "risk_score":
		return cmpFloat(a.RiskScore, b.RiskScore)
	default:
		return cmpFloat(a.TotalAmount, b.TotalAmount)
	}
}

func compareTrends(a, b models.TrendPoint, field string) int {
	switch field {
	case "contract_count":
		return cmpInt(a.ContractCount, b.ContractCount)
	case "avg_risk_score":
		return cmpFloat(a.AvgRiskScore, b.AvgRiskScore)
	case "total_amount":
		return cmpFloat(a.TotalAmount, b.TotalAmount)
	default: // period
		return strings.Compare(a.Period, b.Period)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// --- pagination ---

func pageOf[T any](rows []T, req query.PageRequest, compare func(a, b T, field string) int) (*models.Page, error) {
	sort.SliceStable(rows, func(i, j int) bool {
		c := compare(rows[i], rows[j], req.Sort.Field)
		if req.Sort.Order == domain.SortDesc {
			return c > 0
		}
		return c < 0
	})

	total := len(rows)
	perPage := req.PageSize
	if perPage < 1 {
		perPage = 25
	}
	totalPages := (total + perPage - 1) / perPage

	page := req.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	raw := make([]json.RawMessage, 0, end-start)
	for _, r := range rows[start:end] {
		b, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("marshal row: %w", err)
		}
		raw = append(raw, b)
	}

	return &models.Page{
		Rows: raw,
		Pagination: models.Pagination{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}
