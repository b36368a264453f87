package repository

import (
	"database/sql"
	"fmt"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
)

// BackupRepository replaces the whole dataset during a backup restore. The
// swap is one transaction; a failed restore leaves the previous data intact.
type BackupRepository struct {
	db *sql.DB
}

// NewBackupRepository creates a new BackupRepository with the provided database connection.
func NewBackupRepository(db *sql.DB) *BackupRepository {
	return &BackupRepository{db: db}
}

// ReplaceAll wipes every data table and loads the given dataset. Reminder
// state (dispatch history and daily log) is cleared rather than restored:
// installment IDs change across a restore, so stale cooldowns would pin the
// wrong rows.
func (r *BackupRepository) ReplaceAll(customers []model.Customer, catalog []model.CatalogProduct, expenses []model.Expense) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tables := []string{
		"reminder_history", "daily_reminder_log",
		"installment", "product", "customer",
		"pricing_plan", "catalog_product", "expense",
	}
	for _, table := range tables {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("failed to clear %s table: %w", table, err)
		}
	}

	for _, c := range customers {
		_, err := tx.Exec(`
			INSERT INTO customer (id, full_name, phone, address, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, c.ID, c.FullName, c.Phone, c.Address, formatTime(c.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to restore customer: %w", err)
		}

		for _, p := range c.Products {
			_, err := tx.Exec(`
				INSERT INTO product (id, customer_id, portal_id, catalog_product_id, name, plan_name,
					total_price, down_payment, installments_count, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, p.ID, p.CustomerID, p.PortalID, nullIfEmpty(p.CatalogProductID), p.Name, p.PlanName,
				p.TotalPrice.String(), p.DownPayment.String(), p.InstallmentsCount, formatTime(p.CreatedAt))
			if err != nil {
				return fmt.Errorf("failed to restore product: %w", err)
			}

			for i := range p.Installments {
				if err := insertInstallment(tx, p.Installments[i]); err != nil {
					return err
				}
			}
		}
	}

	for _, cp := range catalog {
		_, err := tx.Exec(`
			INSERT INTO catalog_product (id, name, total_price, category, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, cp.ID, cp.Name, cp.TotalPrice.String(), cp.Category, formatTime(cp.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to restore catalog product: %w", err)
		}
		for _, plan := range cp.Plans {
			if err := insertPlan(tx, plan); err != nil {
				return err
			}
		}
	}

	for _, e := range expenses {
		_, err := tx.Exec(`
			INSERT INTO expense (id, description, amount, category, date, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, e.ID, e.Description, e.Amount.String(), string(e.Category),
			e.Date.Format("2006-01-02"), formatTime(e.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to restore expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}
	return nil
}
