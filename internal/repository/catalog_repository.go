package repository

import (
	"database/sql"
	"fmt"
	"strings"

	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
)

// CatalogRepository provides data access methods for the catalog_product and
// pricing_plan tables.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository with the provided database connection.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Create inserts a catalog product together with its pricing plans.
func (r *CatalogRepository) Create(p model.CatalogProduct) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO catalog_product (id, name, total_price, category, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.TotalPrice.String(), p.Category, formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert catalog product: %w", err)
	}

	for _, plan := range p.Plans {
		if err := insertPlan(tx, plan); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog product creation: %w", err)
	}
	return nil
}

// GetAll retrieves every catalog product with its plans.
func (r *CatalogRepository) GetAll() ([]model.CatalogProduct, error) {
	rows, err := r.db.Query(`
		SELECT id, name, total_price, category, created_at
		FROM catalog_product
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog_product table: %w", err)
	}
	defer rows.Close()

	products := []model.CatalogProduct{}
	ids := []string{}
	for rows.Next() {
		p, err := scanCatalogProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
		ids = append(ids, p.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog_product table: %w", err)
	}

	plans, err := r.loadPlans(ids)
	if err != nil {
		return nil, err
	}
	for i := range products {
		pl := plans[products[i].ID]
		if pl == nil {
			pl = []model.PricingPlan{}
		}
		products[i].Plans = pl
	}

	return products, nil
}

// GetByID retrieves one catalog product with its plans.
func (r *CatalogRepository) GetByID(catalogProductID string) (model.CatalogProduct, error) {
	row := r.db.QueryRow(`
		SELECT id, name, total_price, category, created_at
		FROM catalog_product
		WHERE id = ?
	`, catalogProductID)

	p, err := scanCatalogProduct(row)
	if err == sql.ErrNoRows {
		return model.CatalogProduct{}, apperrors.ErrCatalogProductNotFound
	}
	if err != nil {
		return model.CatalogProduct{}, err
	}

	plans, err := r.loadPlans([]string{p.ID})
	if err != nil {
		return model.CatalogProduct{}, err
	}
	p.Plans = plans[p.ID]
	if p.Plans == nil {
		p.Plans = []model.PricingPlan{}
	}
	return p, nil
}

// Update rewrites a catalog product's fields and replaces its plans.
func (r *CatalogRepository) Update(p model.CatalogProduct) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE catalog_product SET name = ?, total_price = ?, category = ?
		WHERE id = ?
	`, p.Name, p.TotalPrice.String(), p.Category, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update catalog product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCatalogProductNotFound
	}

	if _, err := tx.Exec(`DELETE FROM pricing_plan WHERE catalog_product_id = ?`, p.ID); err != nil {
		return fmt.Errorf("failed to clear pricing plans: %w", err)
	}
	for _, plan := range p.Plans {
		if err := insertPlan(tx, plan); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog product update: %w", err)
	}
	return nil
}

// Delete removes a catalog product; its plans cascade. Sold products keep
// their own copied figures and are unaffected.
func (r *CatalogRepository) Delete(catalogProductID string) error {
	result, err := r.db.Exec(`DELETE FROM catalog_product WHERE id = ?`, catalogProductID)
	if err != nil {
		return fmt.Errorf("failed to delete catalog product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCatalogProductNotFound
	}
	return nil
}

func (r *CatalogRepository) loadPlans(catalogProductIDs []string) (map[string][]model.PricingPlan, error) {
	if len(catalogProductIDs) == 0 {
		return map[string][]model.PricingPlan{}, nil
	}

	placeholders := make([]string, len(catalogProductIDs))
	args := make([]any, len(catalogProductIDs))
	for i, id := range catalogProductIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	rows, err := r.db.Query(`
		SELECT id, catalog_product_id, name, description, total_price, down_payment, installments_count
		FROM pricing_plan
		WHERE catalog_product_id IN (`+strings.Join(placeholders, ",")+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pricing_plan table: %w", err)
	}
	defer rows.Close()

	byProduct := map[string][]model.PricingPlan{}
	for rows.Next() {
		var plan model.PricingPlan
		var totalPrice, downPayment string

		err := rows.Scan(&plan.ID, &plan.CatalogProductID, &plan.Name, &plan.Description,
			&totalPrice, &downPayment, &plan.InstallmentsCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pricing_plan table results: %w", err)
		}
		if plan.TotalPrice, err = parseDecimal("pricing_plan.total_price", totalPrice); err != nil {
			return nil, err
		}
		if plan.DownPayment, err = parseDecimal("pricing_plan.down_payment", downPayment); err != nil {
			return nil, err
		}

		byProduct[plan.CatalogProductID] = append(byProduct[plan.CatalogProductID], plan)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pricing_plan table: %w", err)
	}

	return byProduct, nil
}

func insertPlan(tx *sql.Tx, plan model.PricingPlan) error {
	_, err := tx.Exec(`
		INSERT INTO pricing_plan (id, catalog_product_id, name, description, total_price, down_payment, installments_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, plan.ID, plan.CatalogProductID, plan.Name, plan.Description,
		plan.TotalPrice.String(), plan.DownPayment.String(), plan.InstallmentsCount)
	if err != nil {
		return fmt.Errorf("failed to insert pricing plan: %w", err)
	}
	return nil
}

func scanCatalogProduct(row rowScanner) (model.CatalogProduct, error) {
	var p model.CatalogProduct
	var totalPrice, createdAt string

	err := row.Scan(&p.ID, &p.Name, &totalPrice, &p.Category, &createdAt)
	if err == sql.ErrNoRows {
		return model.CatalogProduct{}, err
	}
	if err != nil {
		return model.CatalogProduct{}, fmt.Errorf("failed to scan catalog_product table results: %w", err)
	}

	if p.TotalPrice, err = parseDecimal("catalog_product.total_price", totalPrice); err != nil {
		return model.CatalogProduct{}, err
	}
	if p.CreatedAt, err = scanTime("catalog_product.created_at", createdAt); err != nil {
		return model.CatalogProduct{}, err
	}
	return p, nil
}
