package repository

import (
	"database/sql"
	"fmt"
	"strings"

	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// InstallmentRepository provides data access methods for the installment
// table. Mutations that change an installment's amount, or add one, must
// update the owning product's running totals in the same transaction; those
// combined writes live here so no inconsistent intermediate state is
// observable from outside.
type InstallmentRepository struct {
	db *sql.DB
}

// NewInstallmentRepository creates a new InstallmentRepository with the provided database connection.
func NewInstallmentRepository(db *sql.DB) *InstallmentRepository {
	return &InstallmentRepository{db: db}
}

// GetByID retrieves one installment.
func (r *InstallmentRepository) GetByID(installmentID string) (model.Installment, error) {
	row := r.db.QueryRow(`
		SELECT id, product_id, due_date, amount, amount_paid, status, paid_at
		FROM installment
		WHERE id = ?
	`, installmentID)

	inst, err := scanInstallment(row)
	if err == sql.ErrNoRows {
		return model.Installment{}, apperrors.ErrInstallmentNotFound
	}
	if err != nil {
		return model.Installment{}, err
	}
	return inst, nil
}

// GetByIDs retrieves the given installments. Missing IDs surface as
// ErrInstallmentNotFound so bulk operations fail before mutating anything.
func (r *InstallmentRepository) GetByIDs(installmentIDs []string) ([]model.Installment, error) {
	if len(installmentIDs) == 0 {
		return []model.Installment{}, nil
	}

	placeholders := make([]string, len(installmentIDs))
	args := make([]any, len(installmentIDs))
	for i, id := range installmentIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	rows, err := r.db.Query(`
		SELECT id, product_id, due_date, amount, amount_paid, status, paid_at
		FROM installment
		WHERE id IN (`+strings.Join(placeholders, ",")+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query installment table: %w", err)
	}
	defer rows.Close()

	installments := []model.Installment{}
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}
		installments = append(installments, inst)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating installment table: %w", err)
	}

	if len(installments) != len(installmentIDs) {
		return nil, apperrors.ErrInstallmentNotFound
	}
	return installments, nil
}

// Update rewrites an installment's mutable fields. Used for mutations that do
// not change the scheduled amount, so product totals are unaffected.
func (r *InstallmentRepository) Update(inst model.Installment) error {
	result, err := r.db.Exec(`
		UPDATE installment SET due_date = ?, amount = ?, amount_paid = ?, status = ?, paid_at = ?
		WHERE id = ?
	`, formatTime(inst.DueDate), inst.Amount.String(), inst.AmountPaid.String(),
		string(inst.Status), formatNullTime(inst.PaidAt), inst.ID)
	if err != nil {
		return fmt.Errorf("failed to update installment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInstallmentNotFound
	}
	return nil
}

// UpdateWithProductTotal rewrites an installment and the owning product's
// running total price in one transaction.
func (r *InstallmentRepository) UpdateWithProductTotal(inst model.Installment, newTotalPrice decimal.Decimal) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE installment SET due_date = ?, amount = ?, amount_paid = ?, status = ?, paid_at = ?
		WHERE id = ?
	`, formatTime(inst.DueDate), inst.Amount.String(), inst.AmountPaid.String(),
		string(inst.Status), formatNullTime(inst.PaidAt), inst.ID)
	if err != nil {
		return fmt.Errorf("failed to update installment: %w", err)
	}

	if err := updateProductTotal(tx, inst.ProductID, newTotalPrice, nil); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit installment edit: %w", err)
	}
	return nil
}

// InsertWithProductTotals appends a new installment and bumps the owning
// product's total price and installment count in one transaction.
func (r *InstallmentRepository) InsertWithProductTotals(inst model.Installment, newTotalPrice decimal.Decimal, newCount int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertInstallment(tx, inst); err != nil {
		return err
	}
	if err := updateProductTotal(tx, inst.ProductID, newTotalPrice, &newCount); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit installment insert: %w", err)
	}
	return nil
}

// UpdateAll rewrites a set of installments in one transaction. Used by the
// bulk status operation; none of the writes change scheduled amounts.
func (r *InstallmentRepository) UpdateAll(installments []model.Installment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range installments {
		inst := installments[i]
		_, err := tx.Exec(`
			UPDATE installment SET due_date = ?, amount = ?, amount_paid = ?, status = ?, paid_at = ?
			WHERE id = ?
		`, formatTime(inst.DueDate), inst.Amount.String(), inst.AmountPaid.String(),
			string(inst.Status), formatNullTime(inst.PaidAt), inst.ID)
		if err != nil {
			return fmt.Errorf("failed to update installment %s: %w", inst.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bulk update: %w", err)
	}
	return nil
}

// UnsettledInstallment is an installment eligible for obligation scanning,
// joined with its owners for reminder construction.
type UnsettledInstallment struct {
	Installment  model.Installment
	ProductID    string
	ProductName  string
	CustomerID   string
	CustomerName string
	Phone        string
}

// GetUnsettled retrieves every unpaid or partially paid installment across
// all customers, joined with product and customer identity.
func (r *InstallmentRepository) GetUnsettled() ([]UnsettledInstallment, error) {
	rows, err := r.db.Query(`
		SELECT i.id, i.product_id, i.due_date, i.amount, i.amount_paid, i.status, i.paid_at,
			p.name, c.id, c.full_name, c.phone
		FROM installment i
		JOIN product p ON p.id = i.product_id
		JOIN customer c ON c.id = p.customer_id
		WHERE i.status IN (?, ?)
	`, string(model.StatusUnpaid), string(model.StatusPartiallyPaid))
	if err != nil {
		return nil, fmt.Errorf("failed to query unsettled installments: %w", err)
	}
	defer rows.Close()

	results := []UnsettledInstallment{}
	for rows.Next() {
		var u UnsettledInstallment
		var dueDate, amount, amountPaid, status string
		var paidAt sql.NullString

		err := rows.Scan(&u.Installment.ID, &u.Installment.ProductID, &dueDate, &amount, &amountPaid, &status, &paidAt,
			&u.ProductName, &u.CustomerID, &u.CustomerName, &u.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unsettled installment results: %w", err)
		}

		u.ProductID = u.Installment.ProductID
		u.Installment.Status = model.InstallmentStatus(status)
		if u.Installment.DueDate, err = scanTime("installment.due_date", dueDate); err != nil {
			return nil, err
		}
		if u.Installment.Amount, err = parseDecimal("installment.amount", amount); err != nil {
			return nil, err
		}
		if u.Installment.AmountPaid, err = parseDecimal("installment.amount_paid", amountPaid); err != nil {
			return nil, err
		}
		if u.Installment.PaidAt, err = scanNullTime("installment.paid_at", paidAt); err != nil {
			return nil, err
		}

		results = append(results, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unsettled installments: %w", err)
	}

	return results, nil
}

func insertInstallment(tx *sql.Tx, inst model.Installment) error {
	_, err := tx.Exec(`
		INSERT INTO installment (id, product_id, due_date, amount, amount_paid, status, paid_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, inst.ID, inst.ProductID, formatTime(inst.DueDate), inst.Amount.String(),
		inst.AmountPaid.String(), string(inst.Status), formatNullTime(inst.PaidAt))
	if err != nil {
		return fmt.Errorf("failed to insert installment: %w", err)
	}
	return nil
}

func updateProductTotal(tx *sql.Tx, productID string, totalPrice decimal.Decimal, count *int) error {
	var err error
	if count != nil {
		_, err = tx.Exec(`UPDATE product SET total_price = ?, installments_count = ? WHERE id = ?`,
			totalPrice.String(), *count, productID)
	} else {
		_, err = tx.Exec(`UPDATE product SET total_price = ? WHERE id = ?`,
			totalPrice.String(), productID)
	}
	if err != nil {
		return fmt.Errorf("failed to update product totals: %w", err)
	}
	return nil
}

func scanInstallment(row rowScanner) (model.Installment, error) {
	var inst model.Installment
	var dueDate, amount, amountPaid, status string
	var paidAt sql.NullString

	err := row.Scan(&inst.ID, &inst.ProductID, &dueDate, &amount, &amountPaid, &status, &paidAt)
	if err == sql.ErrNoRows {
		return model.Installment{}, err
	}
	if err != nil {
		return model.Installment{}, fmt.Errorf("failed to scan installment table results: %w", err)
	}

	inst.Status = model.InstallmentStatus(status)
	if inst.DueDate, err = scanTime("installment.due_date", dueDate); err != nil {
		return model.Installment{}, err
	}
	if inst.Amount, err = parseDecimal("installment.amount", amount); err != nil {
		return model.Installment{}, err
	}
	if inst.AmountPaid, err = parseDecimal("installment.amount_paid", amountPaid); err != nil {
		return model.Installment{}, err
	}
	if inst.PaidAt, err = scanNullTime("installment.paid_at", paidAt); err != nil {
		return model.Installment{}, err
	}
	return inst, nil
}
