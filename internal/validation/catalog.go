package validation

import (
	"fmt"
	"strings"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/api/request"
)

// ValidateCatalogProduct validates a catalog product create or update body.
// Every plan must be internally consistent: positive total price, a down
// payment that does not exceed it, and a non-negative installment count.
func ValidateCatalogProduct(name string, plans []request.PricingPlanRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(name) == "" {
		errors["name"] = "name is required"
	} else if len(name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if len(plans) == 0 {
		errors["plans"] = "at least one pricing plan is required"
	}
	for i, plan := range plans {
		prefix := fmt.Sprintf("plans[%d].", i)
		if strings.TrimSpace(plan.Name) == "" {
			errors[prefix+"name"] = "name is required"
		}
		if !plan.TotalPrice.IsPositive() {
			errors[prefix+"totalPrice"] = "totalPrice must be positive"
		}
		if plan.DownPayment.IsNegative() {
			errors[prefix+"downPayment"] = "downPayment cannot be negative"
		} else if plan.DownPayment.GreaterThan(plan.TotalPrice) {
			errors[prefix+"downPayment"] = "downPayment cannot exceed totalPrice"
		}
		if plan.InstallmentsCount < 0 {
			errors[prefix+"installmentsCount"] = "installmentsCount cannot be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
