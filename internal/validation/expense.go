package validation

import (
	"fmt"
	"strings"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/api/request"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
)

// ValidateCreateExpense validates an expense creation request.
func ValidateCreateExpense(req request.CreateExpenseRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Description) == "" {
		errors["description"] = "description is required"
	} else if len(req.Description) > 200 {
		errors["description"] = "description must be 200 characters or less"
	}

	if !req.Amount.IsPositive() {
		errors["amount"] = "amount must be positive"
	}

	if !model.ValidExpenseCategory(model.ExpenseCategory(req.Category)) {
		errors["category"] = fmt.Sprintf("invalid category: %s", req.Category)
	}

	validateDate(errors, "date", req.Date)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
