package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies a shop expense for reporting.
type ExpenseCategory string

const (
	ExpenseRent      ExpenseCategory = "rent"
	ExpenseSalaries  ExpenseCategory = "salaries"
	ExpenseBills     ExpenseCategory = "bills"
	ExpenseSupplies  ExpenseCategory = "supplies"
	ExpenseMarketing ExpenseCategory = "marketing"
	ExpenseOther     ExpenseCategory = "other"
)

// ValidExpenseCategory reports whether c is one of the known categories.
func ValidExpenseCategory(c ExpenseCategory) bool {
	switch c {
	case ExpenseRent, ExpenseSalaries, ExpenseBills, ExpenseSupplies, ExpenseMarketing, ExpenseOther:
		return true
	}
	return false
}

// Expense is a shop outgoing, counted against collected payments in reports.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}
