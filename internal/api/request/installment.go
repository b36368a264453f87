package request

import "github.com/shopspring/decimal"

// PaymentRequest represents the request body for recording a payment against
// an installment. Amount accepts a JSON number or string.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// EditInstallmentRequest represents the request body for changing an
// installment's scheduled amount and due date.
type EditInstallmentRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"dueDate"`
}

// BulkStatusRequest represents the request body for a bulk status override.
type BulkStatusRequest struct {
	InstallmentIDs []string `json:"installmentIds"`
	Status         string   `json:"status"`
}

// AddInstallmentRequest represents the request body for appending an
// installment to a product's schedule.
type AddInstallmentRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"dueDate"`
}
