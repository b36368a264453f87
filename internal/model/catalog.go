package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingPlan is a purchase template: it defines the figures the schedule
// generator decomposes into installments. Plans are never mutated by the
// ledger.
type PricingPlan struct {
	ID                string          `json:"id"`
	CatalogProductID  string          `json:"catalogProductId"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	DownPayment       decimal.Decimal `json:"downPayment"`
	InstallmentsCount int             `json:"installmentsCount"`
}

// MonthlyAmount returns the equal installment amount this plan produces,
// or zero for a zero-installment plan.
func (p *PricingPlan) MonthlyAmount() decimal.Decimal {
	if p.InstallmentsCount <= 0 {
		return decimal.Zero
	}
	return p.TotalPrice.Sub(p.DownPayment).Div(decimal.NewFromInt(int64(p.InstallmentsCount)))
}

// CatalogProduct is a sellable product template with one or more pricing
// plans. TotalPrice is kept as a base price for legacy records that predate
// plans; migrated records always carry at least one plan.
type CatalogProduct struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Category   string          `json:"category,omitempty"`
	Plans      []PricingPlan   `json:"plans"`
	CreatedAt  time.Time       `json:"createdAt"`
}
