package errors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist, typically
// because the caller holds a stale reference after a deletion.
var (
	// ErrCustomerNotFound indicates that a customer with the given ID does not exist.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrProductNotFound indicates that a product with the given ID does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInstallmentNotFound indicates that an installment with the given ID does not exist.
	ErrInstallmentNotFound = errors.New("installment not found")

	// ErrCatalogProductNotFound indicates that a catalog product with the given ID does not exist.
	ErrCatalogProductNotFound = errors.New("catalog product not found")

	// ErrPricingPlanNotFound indicates that a pricing plan with the given ID does not exist.
	ErrPricingPlanNotFound = errors.New("pricing plan not found")

	// ErrExpenseNotFound indicates that an expense with the given ID does not exist.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrPortalNotFound indicates that no product carries the given portal ID.
	ErrPortalNotFound = errors.New("portal not found")
)

// Business logic errors represent validation failures or constraint
// violations. Operations fail fast with these before any mutation is applied;
// there is no partial application.
var (
	// ErrInvalidPaymentAmount indicates a payment amount that is zero or negative.
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")

	// ErrPaymentExceedsRemaining indicates a payment larger than the amount
	// still due on the installment. Payments are rejected, never clamped.
	ErrPaymentExceedsRemaining = errors.New("payment exceeds remaining amount due")

	// ErrInvalidInstallmentAmount indicates a non-positive installment amount.
	ErrInvalidInstallmentAmount = errors.New("installment amount must be positive")

	// ErrInvalidDueDate indicates a missing or unparseable due date.
	ErrInvalidDueDate = errors.New("invalid due date")

	// ErrInvalidBulkStatus indicates a bulk status target outside {paid, partially_paid}.
	ErrInvalidBulkStatus = errors.New("bulk status must be paid or partially_paid")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidDateRange indicates that the provided report date range is
	// invalid (e.g., start date after end date).
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Data shape errors represent persisted or imported state that fails the
// migration assumptions. Recovery falls back to the supplied default value;
// these are never fatal to the whole application.
var (
	// ErrCorruptBackup indicates that a backup payload could not be parsed.
	ErrCorruptBackup = errors.New("backup payload is not valid JSON")

	// ErrInvalidPortalToken indicates a sealed portal link token that fails
	// verification or has expired.
	ErrInvalidPortalToken = errors.New("invalid or expired portal token")
)
