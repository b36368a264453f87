package validation

import (
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/api/request"
)

// ValidateCreatePurchase validates a purchase creation request. Customer and
// catalog product IDs must be valid UUIDs; the plan ID only needs to be
// non-empty because migrated plans may carry legacy identifiers.
func ValidateCreatePurchase(req request.CreatePurchaseRequest) error {
	if err := ValidateUUID(req.CustomerID); err != nil {
		return err
	}
	if err := ValidateUUID(req.CatalogProductID); err != nil {
		return err
	}

	errors := make(map[string]string)
	if req.PlanID == "" {
		errors["planId"] = "planId is required"
	}
	if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
