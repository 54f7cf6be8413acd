package models

import "encoding/json"

type Vendor struct {
	VendorID       string  `json:"vendor_id"`
	Name           string  `json:"name"`
	SectorID       int     `json:"sector_id"`
	TotalContracts int     `json:"total_contracts"`
	TotalAmount    float64 `json:"total_amount"`
	RiskScore      float64 `json:"risk_score"`
	RiskLevel      string  `json:"risk_level"`
}

type Institution struct {
	InstitutionID  string  `json:"institution_id"`
	Name           string  `json:"name"`
	SectorID       int     `json:"sector_id"`
	TotalContracts int     `json:"total_contracts"`
	TotalAmount    float64 `json:"total_amount"`
	RiskScore      float64 `json:"risk_score"`
	RiskLevel      string  `json:"risk_level"`
}

type TrendPoint struct {
	Period        string  `json:"period"` // YYYY-MM
	ContractCount int     `json:"contract_count"`
	TotalAmount   float64 `json:"total_amount"`
	AvgRiskScore  float64 `json:"avg_risk_score"`
}

// Pagination mirrors the collaborator's envelope verbatim.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Page is one fetched page of results. Rows stay opaque to the engine;
// rendering owns their interpretation.
type Page struct {
	Rows       []json.RawMessage `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
