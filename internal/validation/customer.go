package validation

import (
	"strings"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/api/request"
)

// ValidateCreateCustomer validates a customer registration request.
func ValidateCreateCustomer(req request.CreateCustomerRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.FullName) == "" {
		errors["fullName"] = "fullName is required"
	} else if len(req.FullName) > 100 {
		errors["fullName"] = "fullName must be 100 characters or less"
	}

	if strings.TrimSpace(req.Phone) == "" {
		errors["phone"] = "phone is required"
	} else if len(req.Phone) > 20 {
		errors["phone"] = "phone must be 20 characters or less"
	}

	if len(req.Address) > 200 {
		errors["address"] = "address must be 200 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateCustomer validates a customer profile update request.
func ValidateUpdateCustomer(req request.UpdateCustomerRequest) error {
	return ValidateCreateCustomer(request.CreateCustomerRequest{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	})
}
