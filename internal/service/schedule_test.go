package service_test

import (
	"testing"
	"time"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/service"
	"github.com/shopspring/decimal"
)

// TestGenerateInstallments tests the schedule generator.
//
// WHY: The generated schedule is the contract every later ledger operation
// builds on: equal amounts, monthly due dates starting one month out, and a
// sum that covers the financed remainder.
func TestGenerateInstallments(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("splits remainder into equal monthly amounts", func(t *testing.T) {
		installments := service.GenerateInstallments(
			"product-1",
			decimal.NewFromInt(1200000),
			decimal.NewFromInt(200000),
			10,
			now,
		)

		if len(installments) != 10 {
			t.Fatalf("Expected 10 installments, got %d", len(installments))
		}

		expected := decimal.NewFromInt(100000)
		sum := decimal.Zero
		for i, inst := range installments {
			if !inst.Amount.Equal(expected) {
				t.Errorf("Installment %d: expected amount %s, got %s", i, expected, inst.Amount)
			}
			if !inst.AmountPaid.IsZero() {
				t.Errorf("Installment %d: expected zero amountPaid, got %s", i, inst.AmountPaid)
			}
			if inst.Status != model.StatusUnpaid {
				t.Errorf("Installment %d: expected unpaid status, got %s", i, inst.Status)
			}
			sum = sum.Add(inst.Amount)
		}

		if !sum.Equal(decimal.NewFromInt(1000000)) {
			t.Errorf("Expected installments to sum to 1000000, got %s", sum)
		}
	})

	t.Run("first due date is one month after now", func(t *testing.T) {
		installments := service.GenerateInstallments(
			"product-1",
			decimal.NewFromInt(600),
			decimal.Zero,
			6,
			now,
		)

		first := installments[0].DueDate
		if first.Month() != time.February || first.Day() != 15 {
			t.Errorf("Expected first due date 2026-02-15, got %s", first.Format("2006-01-02"))
		}

		for i := 1; i < len(installments); i++ {
			prev := installments[i-1].DueDate
			if !installments[i].DueDate.Equal(prev.AddDate(0, 1, 0)) {
				t.Errorf("Installment %d: expected due one month after previous", i)
			}
		}
	})

	t.Run("due dates stay sorted ascending", func(t *testing.T) {
		installments := service.GenerateInstallments(
			"product-1",
			decimal.NewFromInt(1200),
			decimal.Zero,
			12,
			now,
		)

		for i := 1; i < len(installments); i++ {
			if installments[i].DueDate.Before(installments[i-1].DueDate) {
				t.Errorf("Installment %d is due before installment %d", i, i-1)
			}
		}
	})

	t.Run("zero count yields empty schedule", func(t *testing.T) {
		installments := service.GenerateInstallments(
			"product-1",
			decimal.NewFromInt(500000),
			decimal.NewFromInt(500000),
			0,
			now,
		)

		if len(installments) != 0 {
			t.Errorf("Expected empty schedule, got %d installments", len(installments))
		}
	})

	t.Run("negative count yields empty schedule", func(t *testing.T) {
		installments := service.GenerateInstallments(
			"product-1",
			decimal.NewFromInt(500000),
			decimal.Zero,
			-3,
			now,
		)

		if len(installments) != 0 {
			t.Errorf("Expected empty schedule, got %d installments", len(installments))
		}
	})
}
