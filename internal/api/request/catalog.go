package request

import "github.com/shopspring/decimal"

// PricingPlanRequest is one pricing plan within a catalog product request.
// ID is empty for new plans; updates carrying an ID keep it stable.
type PricingPlanRequest struct {
	ID                string          `json:"id,omitempty"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	DownPayment       decimal.Decimal `json:"downPayment"`
	InstallmentsCount int             `json:"installmentsCount"`
}

// CreateCatalogProductRequest represents the request body for adding a
// sellable product template.
type CreateCatalogProductRequest struct {
	Name       string               `json:"name"`
	TotalPrice decimal.Decimal      `json:"totalPrice"`
	Category   string               `json:"category"`
	Plans      []PricingPlanRequest `json:"plans"`
}

// UpdateCatalogProductRequest represents the request body for rewriting a
// product template and its plans.
type UpdateCatalogProductRequest struct {
	Name       string               `json:"name"`
	TotalPrice decimal.Decimal      `json:"totalPrice"`
	Category   string               `json:"category"`
	Plans      []PricingPlanRequest `json:"plans"`
}
