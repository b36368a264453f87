package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents one purchase instance sold on a payment plan.
//
// TotalPrice is a maintained running total, not a recomputed derivation: it
// starts as downPayment + sum of scheduled installment amounts and is adjusted
// by the delta of every later installment edit or addition.
// InstallmentsCount is kept equal to len(Installments) at every mutation site.
type Product struct {
	ID                string          `json:"id"`
	CustomerID        string          `json:"customerId"`
	PortalID          string          `json:"portalId"`
	CatalogProductID  string          `json:"catalogProductId,omitempty"`
	Name              string          `json:"name"`
	PlanName          string          `json:"planName,omitempty"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	DownPayment       decimal.Decimal `json:"downPayment"`
	InstallmentsCount int             `json:"installmentsCount"`
	Installments      []Installment   `json:"installments"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// PaidAmount returns the down payment plus all payments applied to installments.
func (p *Product) PaidAmount() decimal.Decimal {
	paid := p.DownPayment
	for i := range p.Installments {
		paid = paid.Add(p.Installments[i].AmountPaid)
	}
	return paid
}

// RemainingAmount returns the outstanding balance on the product.
func (p *Product) RemainingAmount() decimal.Decimal {
	return p.TotalPrice.Sub(p.PaidAmount())
}

// ProgressRatio returns paid/total clamped to [0, 1], or 0 when the total
// price is zero.
func (p *Product) ProgressRatio() float64 {
	if !p.TotalPrice.IsPositive() {
		return 0
	}
	ratio, _ := p.PaidAmount().Div(p.TotalPrice).Float64()
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// SortInstallments restores the ordering invariant: ascending by due date.
func (p *Product) SortInstallments() {
	sort.SliceStable(p.Installments, func(i, j int) bool {
		return p.Installments[i].DueDate.Before(p.Installments[j].DueDate)
	})
}

// LastInstallment returns the installment with the latest due date, or nil
// for an empty schedule. Installments are kept sorted by due date.
func (p *Product) LastInstallment() *Installment {
	if len(p.Installments) == 0 {
		return nil
	}
	return &p.Installments[len(p.Installments)-1]
}

// PaidInstallmentsCount returns how many installments are fully paid.
func (p *Product) PaidInstallmentsCount() int {
	n := 0
	for i := range p.Installments {
		if p.Installments[i].Status == StatusPaid {
			n++
		}
	}
	return n
}

// UnpaidInstallmentsCount returns how many installments are not fully paid,
// including partially paid and on-hold ones.
func (p *Product) UnpaidInstallmentsCount() int {
	return len(p.Installments) - p.PaidInstallmentsCount()
}
