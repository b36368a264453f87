package service

import (
	"time"

	"github.com/google/uuid"
	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
	"github.com/shopspring/decimal"
)

// InstallmentService is the payment ledger: it owns every mutation of an
// installment's amount, amountPaid and status, and keeps the owning product's
// running totals consistent with each change. All operations validate before
// applying; a rejected operation leaves no partial mutation behind.
type InstallmentService struct {
	installmentRepo *repository.InstallmentRepository
	productRepo     *repository.ProductRepository
}

// NewInstallmentService creates a new InstallmentService with the provided repository dependencies.
func NewInstallmentService(
	installmentRepo *repository.InstallmentRepository,
	productRepo *repository.ProductRepository,
) *InstallmentService {
	return &InstallmentService{
		installmentRepo: installmentRepo,
		productRepo:     productRepo,
	}
}

// ApplyPayment adds a payment to an installment and reconciles its status.
//
// The payment must be positive and must not exceed the remaining amount due;
// violations are rejected with a validation error, never clamped away. As a
// final guard the ledger still caps amountPaid at amount, so no sequence of
// valid payments can push it past the scheduled obligation.
func (s *InstallmentService) ApplyPayment(installmentID string, payment decimal.Decimal, now time.Time) (model.Installment, error) {
	if !payment.IsPositive() {
		return model.Installment{}, apperrors.ErrInvalidPaymentAmount
	}

	inst, err := s.installmentRepo.GetByID(installmentID)
	if err != nil {
		return model.Installment{}, err
	}

	if payment.GreaterThan(inst.Remaining()) {
		return model.Installment{}, apperrors.ErrPaymentExceedsRemaining
	}

	inst.AmountPaid = inst.AmountPaid.Add(payment)
	if inst.AmountPaid.GreaterThan(inst.Amount) {
		inst.AmountPaid = inst.Amount
	}
	inst.Reconcile(now)

	if err := s.installmentRepo.Update(inst); err != nil {
		return model.Installment{}, err
	}
	return inst, nil
}

// EditInstallment changes an installment's scheduled amount and due date.
//
// amountPaid is clamped to the new amount when it would exceed it, the status
// is re-reconciled, and the owning product's total price absorbs the delta
// (newAmount - oldAmount) in the same transaction. The product's installment
// ordering is by due date on every read, so moving a due date re-sorts the
// schedule.
func (s *InstallmentService) EditInstallment(installmentID string, newAmount decimal.Decimal, newDueDate time.Time, now time.Time) (model.Installment, error) {
	if !newAmount.IsPositive() {
		return model.Installment{}, apperrors.ErrInvalidInstallmentAmount
	}
	if newDueDate.IsZero() {
		return model.Installment{}, apperrors.ErrInvalidDueDate
	}

	inst, err := s.installmentRepo.GetByID(installmentID)
	if err != nil {
		return model.Installment{}, err
	}
	product, err := s.productRepo.GetByID(inst.ProductID)
	if err != nil {
		return model.Installment{}, err
	}

	delta := newAmount.Sub(inst.Amount)
	inst.Amount = newAmount
	inst.DueDate = newDueDate
	if inst.AmountPaid.GreaterThan(inst.Amount) {
		inst.AmountPaid = inst.Amount
	}
	inst.Reconcile(now)

	newTotal := product.TotalPrice.Add(delta)
	if err := s.installmentRepo.UpdateWithProductTotal(inst, newTotal); err != nil {
		return model.Installment{}, err
	}
	return inst, nil
}

// BulkSetStatus applies a status override to a set of installments.
//
// paid sets amountPaid to the full amount and stamps a fresh paidAt on every
// selected installment, including ones that were already paid.
// partially_paid sets the status and clears paidAt without touching
// amountPaid, so an installment with nothing paid can be displayed as
// partially paid; that long-standing behavior is kept as-is.
func (s *InstallmentService) BulkSetStatus(installmentIDs []string, target model.InstallmentStatus, now time.Time) ([]model.Installment, error) {
	if target != model.StatusPaid && target != model.StatusPartiallyPaid {
		return nil, apperrors.ErrInvalidBulkStatus
	}

	installments, err := s.installmentRepo.GetByIDs(installmentIDs)
	if err != nil {
		return nil, err
	}

	for i := range installments {
		if target == model.StatusPaid {
			installments[i].MarkPaid(now)
		} else {
			installments[i].MarkPartiallyPaid()
		}
	}

	if err := s.installmentRepo.UpdateAll(installments); err != nil {
		return nil, err
	}
	return installments, nil
}

// AddInstallment appends a new unpaid installment to a product. The product's
// installment count and total price grow with it in the same transaction, and
// the schedule ordering by due date is restored.
func (s *InstallmentService) AddInstallment(productID string, amount decimal.Decimal, dueDate time.Time) (model.Installment, error) {
	if !amount.IsPositive() {
		return model.Installment{}, apperrors.ErrInvalidInstallmentAmount
	}
	if dueDate.IsZero() {
		return model.Installment{}, apperrors.ErrInvalidDueDate
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return model.Installment{}, err
	}

	inst := model.Installment{
		ID:         uuid.NewString(),
		ProductID:  productID,
		DueDate:    dueDate,
		Amount:     amount,
		AmountPaid: decimal.Zero,
		Status:     model.StatusUnpaid,
	}

	newTotal := product.TotalPrice.Add(amount)
	newCount := len(product.Installments) + 1
	if err := s.installmentRepo.InsertWithProductTotals(inst, newTotal, newCount); err != nil {
		return model.Installment{}, err
	}
	return inst, nil
}
