package request

import "github.com/shopspring/decimal"

// CreateExpenseRequest represents the request body for recording an expense.
type CreateExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
}
