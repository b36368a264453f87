package validation

import (
	"strconv"
	"strings"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
)

// ValidateSettings validates a settings update. Only known keys are storable,
// values must be non-empty, and numeric settings must parse.
func ValidateSettings(values map[string]string) error {
	errors := make(map[string]string)

	if len(values) == 0 {
		errors["settings"] = "at least one setting is required"
	}

	for key, value := range values {
		if !model.KnownSettingKeys[key] {
			errors[key] = "unknown setting"
			continue
		}
		if strings.TrimSpace(value) == "" {
			errors[key] = "value is required"
			continue
		}
		if key == model.SettingReminderUpcomingDays {
			if n, err := strconv.Atoi(value); err != nil || n < 0 {
				errors[key] = "must be a non-negative integer"
			}
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
