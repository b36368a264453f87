// Package validation checks incoming request bodies before any service
// mutation. Validators return an *Error carrying per-field messages; requests
// fail whole, never partially.
package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
)

// Error carries field-level validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.ErrEmptyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

// ValidateUUIDs validates a slice of UUIDs
func ValidateUUIDs(ids []string) error {
	if len(ids) == 0 {
		return apperrors.ErrEmptyID
	}
	for _, id := range ids {
		if err := ValidateUUID(id); err != nil {
			return err
		}
	}
	return nil
}
