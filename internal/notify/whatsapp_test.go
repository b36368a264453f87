package notify_test

import (
	"strings"
	"testing"
	"time"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/notify"
	"github.com/shopspring/decimal"
)

// TestSanitizePhone tests phone normalization for wa.me links.
//
// WHY: Customers are stored with local numbers like 07701234567; WhatsApp
// links need the international form with no separators.
func TestSanitizePhone(t *testing.T) {
	b := notify.NewBuilder("964", "IQD")

	tests := []struct {
		name     string
		phone    string
		expected string
	}{
		{"local number gets country code", "07701234567", "9647701234567"},
		{"separators stripped", "0770 123-4567", "9647701234567"},
		{"already international left alone", "9647701234567", "9647701234567"},
		{"plus sign stripped", "+9647701234567", "9647701234567"},
		{"empty stays empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.SanitizePhone(tc.phone); got != tc.expected {
				t.Errorf("SanitizePhone(%q) = %q, expected %q", tc.phone, got, tc.expected)
			}
		})
	}
}

// TestBuilderReminder tests the reminder message contents.
//
// WHY: The message must carry the remaining amount on the installment (not
// its face value), the paid/unpaid counts, and a wa.me URL with the body
// escaped.
func TestBuilderReminder(t *testing.T) {
	b := notify.NewBuilder("964", "IQD")

	paidAt := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	product := model.Product{
		CustomerID: "c1",
		TotalPrice: decimal.NewFromInt(1200000),
		Installments: []model.Installment{
			{Amount: decimal.NewFromInt(100000), AmountPaid: decimal.NewFromInt(100000), Status: model.StatusPaid, PaidAt: &paidAt, DueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
			{Amount: decimal.NewFromInt(100000), AmountPaid: decimal.NewFromInt(40000), Status: model.StatusPartiallyPaid, DueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
			{Amount: decimal.NewFromInt(100000), AmountPaid: decimal.Zero, Status: model.StatusUnpaid, DueDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
	}

	msg := b.Reminder("Ahmed Ali", "Fridge", "07701234567", product, product.Installments[1])

	if msg.CustomerID != "c1" || msg.CustomerName != "Ahmed Ali" {
		t.Errorf("Expected customer identity on the message, got %q/%q", msg.CustomerID, msg.CustomerName)
	}
	if msg.Phone != "9647701234567" {
		t.Errorf("Expected sanitized phone, got %q", msg.Phone)
	}
	if !strings.Contains(msg.Body, "60,000 IQD") {
		t.Errorf("Expected the remaining 60,000 IQD in the body:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Body, "2026-02-01") {
		t.Errorf("Expected the due date in the body:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Body, "Fully paid: 1") {
		t.Errorf("Expected the paid count in the body:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Body, "Final installment due: 2026-03-01") {
		t.Errorf("Expected the final due date in the body:\n%s", msg.Body)
	}
	if !strings.HasPrefix(msg.URL, "https://wa.me/9647701234567?text=") {
		t.Errorf("Expected a wa.me URL, got %q", msg.URL)
	}
	if strings.Contains(msg.URL, "\n") || strings.Contains(msg.URL, " ") {
		t.Errorf("Expected the body escaped in the URL, got %q", msg.URL)
	}
}

// TestBuilderPaymentConfirmation tests the receipt message.
func TestBuilderPaymentConfirmation(t *testing.T) {
	b := notify.NewBuilder("964", "IQD")

	paidAt := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	inst := model.Installment{
		Amount:     decimal.NewFromInt(100000),
		AmountPaid: decimal.NewFromInt(100000),
		Status:     model.StatusPaid,
		PaidAt:     &paidAt,
	}
	product := model.Product{
		CustomerID:   "c1",
		TotalPrice:   decimal.NewFromInt(1200000),
		DownPayment:  decimal.NewFromInt(200000),
		Installments: []model.Installment{inst},
	}

	msg := b.PaymentConfirmation("Ahmed Ali", "Fridge", "07701234567", product, inst)

	if !strings.Contains(msg.Body, "100,000 IQD") {
		t.Errorf("Expected the installment amount in the body:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Body, "2026-02-05") {
		t.Errorf("Expected the payment date in the body:\n%s", msg.Body)
	}
	// 1,200,000 less the 200,000 down payment and the 100,000 paid.
	if !strings.Contains(msg.Body, "900,000 IQD") {
		t.Errorf("Expected the remaining balance in the body:\n%s", msg.Body)
	}
}
