package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondServiceError maps a service error to an HTTP status: not-found
// sentinels to 404, validation failures to 400, everything else to 500 with
// the given message.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	errorResponse := map[string]string{
		"error":  message,
		"detail": err.Error(),
	}

	switch {
	case isNotFound(err):
		respondJSON(w, http.StatusNotFound, errorResponse)
	case isValidation(err):
		respondJSON(w, http.StatusBadRequest, errorResponse)
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse)
	}
}

func isNotFound(err error) bool {
	for _, target := range []error{
		apperrors.ErrCustomerNotFound,
		apperrors.ErrProductNotFound,
		apperrors.ErrInstallmentNotFound,
		apperrors.ErrCatalogProductNotFound,
		apperrors.ErrPricingPlanNotFound,
		apperrors.ErrExpenseNotFound,
		apperrors.ErrPortalNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isValidation(err error) bool {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return true
	}
	for _, target := range []error{
		apperrors.ErrInvalidPaymentAmount,
		apperrors.ErrPaymentExceedsRemaining,
		apperrors.ErrInvalidInstallmentAmount,
		apperrors.ErrInvalidDueDate,
		apperrors.ErrInvalidBulkStatus,
		apperrors.ErrEmptyID,
		apperrors.ErrInvalidUUID,
		apperrors.ErrInvalidDateRange,
		apperrors.ErrCorruptBackup,
		apperrors.ErrInvalidPortalToken,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// decodeBody parses a JSON request body into dst, responding with 400 on
// malformed input. Returns false when the response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		errorResponse := map[string]string{
			"error":  "invalid request body",
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusBadRequest, errorResponse)
		return false
	}
	return true
}

// parseDate accepts YYYY-MM-DD or RFC3339 date strings.
func parseDate(value string) (time.Time, error) {
	return repository.ParseTime(value)
}
