package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus is the lifecycle state of a single installment.
type InstallmentStatus string

const (
	StatusUnpaid        InstallmentStatus = "unpaid"
	StatusPartiallyPaid InstallmentStatus = "partially_paid"
	StatusPaid          InstallmentStatus = "paid"
	StatusOnHold        InstallmentStatus = "on_hold"
)

// Installment is one scheduled partial obligation within a product's payment plan.
// Status is derived from Amount vs AmountPaid by Reconcile, except on_hold which
// is an externally imposed override and never produced by reconciliation.
type Installment struct {
	ID         string            `json:"id"`
	ProductID  string            `json:"productId"`
	DueDate    time.Time         `json:"dueDate"`
	Amount     decimal.Decimal   `json:"amount"`
	AmountPaid decimal.Decimal   `json:"amountPaid"`
	Status     InstallmentStatus `json:"status"`
	PaidAt     *time.Time        `json:"paidAt,omitempty"`
}

// Remaining returns the amount still due on this installment.
func (i *Installment) Remaining() decimal.Decimal {
	return i.Amount.Sub(i.AmountPaid)
}

// IsSettled reports whether the installment needs no further attention from
// the obligation scanner. Paid and on-hold installments are never reported.
func (i *Installment) IsSettled() bool {
	return i.Status == StatusPaid || i.Status == StatusOnHold
}

// Reconcile derives Status and PaidAt from the (Amount, AmountPaid) pair.
// The rule is idempotent: applying it twice yields the same result as once.
//
//   - amountPaid >= amount: paid; PaidAt is stamped on the first transition
//     into paid and preserved on subsequent reconciliations.
//   - 0 < amountPaid < amount: partially_paid, PaidAt cleared.
//   - amountPaid == 0: unpaid, PaidAt cleared.
func (i *Installment) Reconcile(now time.Time) {
	switch {
	case i.AmountPaid.GreaterThanOrEqual(i.Amount):
		i.Status = StatusPaid
		if i.PaidAt == nil {
			t := now
			i.PaidAt = &t
		}
	case i.AmountPaid.IsPositive():
		i.Status = StatusPartiallyPaid
		i.PaidAt = nil
	default:
		i.Status = StatusUnpaid
		i.PaidAt = nil
	}
}

// MarkPaid forces the installment into the paid state, setting AmountPaid to
// the full amount and stamping a fresh PaidAt even if it was already paid.
// Used by the bulk status operation.
func (i *Installment) MarkPaid(now time.Time) {
	i.AmountPaid = i.Amount
	i.Status = StatusPaid
	t := now
	i.PaidAt = &t
}

// MarkPartiallyPaid forces the partially_paid display state without touching
// AmountPaid, mirroring the bulk operation's historical behavior: an
// installment with AmountPaid == 0 can be shown as partially paid while
// numerically unpaid.
func (i *Installment) MarkPartiallyPaid() {
	i.Status = StatusPartiallyPaid
	i.PaidAt = nil
}
