package validation_test

import (
	"errors"
	"testing"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/validation"
)

// TestValidateSettings tests the settings update validation.
//
// WHY: Only known keys may be stored, so a misspelled key fails loudly
// instead of creating an orphan setting nothing reads.
func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name       string
		values     map[string]string
		wantField  string
		wantErrors bool
	}{
		{
			name:   "valid update passes",
			values: map[string]string{model.SettingCurrency: "USD", model.SettingReminderUpcomingDays: "5"},
		},
		{
			name:       "unknown key rejected",
			values:     map[string]string{"shop_color": "blue"},
			wantField:  "shop_color",
			wantErrors: true,
		},
		{
			name:       "empty value rejected",
			values:     map[string]string{model.SettingCurrency: "  "},
			wantField:  model.SettingCurrency,
			wantErrors: true,
		},
		{
			name:       "non-numeric threshold rejected",
			values:     map[string]string{model.SettingReminderUpcomingDays: "soon"},
			wantField:  model.SettingReminderUpcomingDays,
			wantErrors: true,
		},
		{
			name:       "negative threshold rejected",
			values:     map[string]string{model.SettingReminderUpcomingDays: "-1"},
			wantField:  model.SettingReminderUpcomingDays,
			wantErrors: true,
		},
		{
			name:       "empty update rejected",
			values:     map[string]string{},
			wantField:  "settings",
			wantErrors: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.ValidateSettings(tc.values)

			if !tc.wantErrors {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}

			var vErr *validation.Error
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected a validation error, got %v", err)
			}
			if _, ok := vErr.Fields[tc.wantField]; !ok {
				t.Errorf("Expected an error on field %q, got %v", tc.wantField, vErr.Fields)
			}
		})
	}
}
