package repository

import (
	"database/sql"
	"fmt"
	"strings"

	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
)

// ProductRepository provides data access methods for the product and
// installment tables. A product row is always loaded together with its
// installments, ordered by due date, so the ordering invariant holds on
// every read path.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository with the provided database connection.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// CreateWithInstallments inserts a product and its generated schedule in a
// single transaction. No intermediate state where the product exists without
// its installments is observable.
func (r *ProductRepository) CreateWithInstallments(p model.Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO product (id, customer_id, portal_id, catalog_product_id, name, plan_name,
			total_price, down_payment, installments_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.CustomerID, p.PortalID, nullIfEmpty(p.CatalogProductID), p.Name, p.PlanName,
		p.TotalPrice.String(), p.DownPayment.String(), p.InstallmentsCount, formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	for i := range p.Installments {
		if err := insertInstallment(tx, p.Installments[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product creation: %w", err)
	}
	return nil
}

// GetByID retrieves one product with its installments.
func (r *ProductRepository) GetByID(productID string) (model.Product, error) {
	return r.getOne("id", productID)
}

// GetByPortalID resolves the public portal token to its product.
func (r *ProductRepository) GetByPortalID(portalID string) (model.Product, error) {
	p, err := r.getOne("portal_id", portalID)
	if err == apperrors.ErrProductNotFound {
		return model.Product{}, apperrors.ErrPortalNotFound
	}
	return p, err
}

func (r *ProductRepository) getOne(column, value string) (model.Product, error) {
	//#nosec G202 -- column is one of two compile-time constants, not user input
	row := r.db.QueryRow(`
		SELECT id, customer_id, portal_id, catalog_product_id, name, plan_name,
			total_price, down_payment, installments_count, created_at
		FROM product
		WHERE `+column+` = ?
	`, value)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return model.Product{}, apperrors.ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, err
	}

	installments, err := r.loadInstallments([]string{p.ID})
	if err != nil {
		return model.Product{}, err
	}
	p.Installments = installments[p.ID]
	return p, nil
}

// GetByCustomerID retrieves all products of one customer, each with its
// installments, ordered by creation time.
func (r *ProductRepository) GetByCustomerID(customerID string) ([]model.Product, error) {
	rows, err := r.db.Query(`
		SELECT id, customer_id, portal_id, catalog_product_id, name, plan_name,
			total_price, down_payment, installments_count, created_at
		FROM product
		WHERE customer_id = ?
		ORDER BY created_at
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product table: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	productIDs := []string{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
		productIDs = append(productIDs, p.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product table: %w", err)
	}

	installments, err := r.loadInstallments(productIDs)
	if err != nil {
		return nil, err
	}
	for i := range products {
		inst := installments[products[i].ID]
		if inst == nil {
			inst = []model.Installment{}
		}
		products[i].Installments = inst
	}

	return products, nil
}

// Delete removes a product; installments cascade.
func (r *ProductRepository) Delete(productID string) error {
	result, err := r.db.Exec(`DELETE FROM product WHERE id = ?`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}

// loadInstallments fetches installments for the given products, grouped by
// product ID, ordered by due date ascending.
func (r *ProductRepository) loadInstallments(productIDs []string) (map[string][]model.Installment, error) {
	if len(productIDs) == 0 {
		return map[string][]model.Installment{}, nil
	}

	placeholders := make([]string, len(productIDs))
	args := make([]any, len(productIDs))
	for i, id := range productIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	rows, err := r.db.Query(`
		SELECT id, product_id, due_date, amount, amount_paid, status, paid_at
		FROM installment
		WHERE product_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY due_date
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query installment table: %w", err)
	}
	defer rows.Close()

	byProduct := map[string][]model.Installment{}
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}
		byProduct[inst.ProductID] = append(byProduct[inst.ProductID], inst)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating installment table: %w", err)
	}

	return byProduct, nil
}

func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	var catalogProductID sql.NullString
	var totalPrice, downPayment, createdAt string

	err := row.Scan(&p.ID, &p.CustomerID, &p.PortalID, &catalogProductID, &p.Name, &p.PlanName,
		&totalPrice, &downPayment, &p.InstallmentsCount, &createdAt)
	if err == sql.ErrNoRows {
		return model.Product{}, err
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to scan product table results: %w", err)
	}

	p.CatalogProductID = catalogProductID.String
	if p.TotalPrice, err = parseDecimal("product.total_price", totalPrice); err != nil {
		return model.Product{}, err
	}
	if p.DownPayment, err = parseDecimal("product.down_payment", downPayment); err != nil {
		return model.Product{}, err
	}
	if p.CreatedAt, err = scanTime("product.created_at", createdAt); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
