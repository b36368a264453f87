package repository

import (
	"database/sql"
	"fmt"
	"time"

	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
)

// ExpenseRepository provides data access methods for the expense table.
type ExpenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository with the provided database connection.
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create inserts a new expense.
func (r *ExpenseRepository) Create(e model.Expense) error {
	_, err := r.db.Exec(`
		INSERT INTO expense (id, description, amount, category, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.Description, e.Amount.String(), string(e.Category),
		e.Date.Format("2006-01-02"), formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// GetAll retrieves every expense, most recent date first.
func (r *ExpenseRepository) GetAll() ([]model.Expense, error) {
	return r.query(`
		SELECT id, description, amount, category, date, created_at
		FROM expense
		ORDER BY date DESC
	`)
}

// GetByDateRange retrieves expenses whose date falls within [start, end].
func (r *ExpenseRepository) GetByDateRange(start, end time.Time) ([]model.Expense, error) {
	return r.query(`
		SELECT id, description, amount, category, date, created_at
		FROM expense
		WHERE date >= ? AND date <= ?
		ORDER BY date DESC
	`, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// Delete removes an expense.
func (r *ExpenseRepository) Delete(expenseID string) error {
	result, err := r.db.Exec(`DELETE FROM expense WHERE id = ?`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) query(query string, args ...any) ([]model.Expense, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense table: %w", err)
	}
	defer rows.Close()

	expenses := []model.Expense{}
	for rows.Next() {
		var e model.Expense
		var amount, category, date, createdAt string

		err := rows.Scan(&e.ID, &e.Description, &amount, &category, &date, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense table results: %w", err)
		}

		e.Category = model.ExpenseCategory(category)
		if e.Amount, err = parseDecimal("expense.amount", amount); err != nil {
			return nil, err
		}
		if e.Date, err = scanTime("expense.date", date); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = scanTime("expense.created_at", createdAt); err != nil {
			return nil, err
		}

		expenses = append(expenses, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense table: %w", err)
	}

	return expenses, nil
}
