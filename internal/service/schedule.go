package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// GenerateInstallments decomposes a pricing plan into an ordered schedule of
// equal monthly installments. The first installment falls due one calendar
// month after now, each subsequent one a month after the previous.
//
// A zero installment count yields an empty schedule: the full obligation is
// then represented by the down payment alone. The function only constructs
// the sequence; it never touches persisted state.
func GenerateInstallments(productID string, totalPrice, downPayment decimal.Decimal, count int, now time.Time) []model.Installment {
	installments := make([]model.Installment, 0, count)
	if count <= 0 {
		return installments
	}

	monthly := totalPrice.Sub(downPayment).Div(decimal.NewFromInt(int64(count)))

	due := now
	for i := 0; i < count; i++ {
		due = due.AddDate(0, 1, 0)
		installments = append(installments, model.Installment{
			ID:         uuid.NewString(),
			ProductID:  productID,
			DueDate:    due,
			Amount:     monthly,
			AmountPaid: decimal.Zero,
			Status:     model.StatusUnpaid,
		})
	}

	return installments
}
