package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/api/request"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
)

// ValidBulkStatus contains the statuses a bulk override may set.
var ValidBulkStatus = map[string]bool{
	string(model.StatusPaid):          true,
	string(model.StatusPartiallyPaid): true,
}

// ValidatePayment validates a payment request. The remaining-amount ceiling
// is the ledger's own rule; only shape is checked here.
func ValidatePayment(req request.PaymentRequest) error {
	errors := make(map[string]string)

	if !req.Amount.IsPositive() {
		errors["amount"] = "amount must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateEditInstallment validates an installment edit request.
func ValidateEditInstallment(req request.EditInstallmentRequest) error {
	errors := make(map[string]string)

	if !req.Amount.IsPositive() {
		errors["amount"] = "amount must be positive"
	}
	validateDate(errors, "dueDate", req.DueDate)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateBulkStatus validates a bulk status override request.
func ValidateBulkStatus(req request.BulkStatusRequest) error {
	if err := ValidateUUIDs(req.InstallmentIDs); err != nil {
		return err
	}

	errors := make(map[string]string)
	if !ValidBulkStatus[req.Status] {
		errors["status"] = fmt.Sprintf("invalid status: %s", req.Status)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateAddInstallment validates an add-installment request.
func ValidateAddInstallment(req request.AddInstallmentRequest) error {
	errors := make(map[string]string)

	if !req.Amount.IsPositive() {
		errors["amount"] = "amount must be positive"
	}
	validateDate(errors, "dueDate", req.DueDate)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateDate(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = field + " is required"
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		if _, err := time.Parse(time.RFC3339, value); err != nil {
			errors[field] = field + " must be YYYY-MM-DD or RFC3339"
		}
	}
}
