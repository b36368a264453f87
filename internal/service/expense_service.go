package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
	"github.com/shopspring/decimal"
)

// ExpenseService records and lists shop expenses.
type ExpenseService struct {
	expenseRepo *repository.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService with the provided repository dependency.
func NewExpenseService(expenseRepo *repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpense records a new expense.
func (s *ExpenseService) CreateExpense(description string, amount decimal.Decimal, category model.ExpenseCategory, date, now time.Time) (model.Expense, error) {
	expense := model.Expense{
		ID:          uuid.NewString(),
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
		CreatedAt:   now,
	}
	if err := s.expenseRepo.Create(expense); err != nil {
		return model.Expense{}, err
	}
	return expense, nil
}

// GetAllExpenses retrieves every expense, most recent first.
func (s *ExpenseService) GetAllExpenses() ([]model.Expense, error) {
	return s.expenseRepo.GetAll()
}

// DeleteExpense removes an expense.
func (s *ExpenseService) DeleteExpense(expenseID string) error {
	return s.expenseRepo.Delete(expenseID)
}
