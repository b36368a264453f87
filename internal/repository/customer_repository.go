package repository

import (
	"database/sql"
	"fmt"

	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
)

// CustomerRepository provides data access methods for the customer table.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new CustomerRepository with the provided database connection.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts a new customer.
func (r *CustomerRepository) Create(c model.Customer) error {
	_, err := r.db.Exec(`
		INSERT INTO customer (id, full_name, phone, address, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.FullName, c.Phone, c.Address, formatTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

// GetAll retrieves every customer, without products, ordered by creation time.
func (r *CustomerRepository) GetAll() ([]model.Customer, error) {
	rows, err := r.db.Query(`
		SELECT id, full_name, phone, address, created_at
		FROM customer
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer table: %w", err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer table: %w", err)
	}

	return customers, nil
}

// GetByID retrieves one customer, without products.
func (r *CustomerRepository) GetByID(customerID string) (model.Customer, error) {
	row := r.db.QueryRow(`
		SELECT id, full_name, phone, address, created_at
		FROM customer
		WHERE id = ?
	`, customerID)

	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return model.Customer{}, apperrors.ErrCustomerNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

// Update rewrites a customer's profile fields.
func (r *CustomerRepository) Update(c model.Customer) error {
	result, err := r.db.Exec(`
		UPDATE customer SET full_name = ?, phone = ?, address = ?
		WHERE id = ?
	`, c.FullName, c.Phone, c.Address, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCustomerNotFound
	}
	return nil
}

// Delete removes a customer. Products and installments cascade.
func (r *CustomerRepository) Delete(customerID string) error {
	result, err := r.db.Exec(`DELETE FROM customer WHERE id = ?`, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCustomerNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (model.Customer, error) {
	var c model.Customer
	var createdAt string

	err := row.Scan(&c.ID, &c.FullName, &c.Phone, &c.Address, &createdAt)
	if err == sql.ErrNoRows {
		return model.Customer{}, err
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("failed to scan customer table results: %w", err)
	}

	c.CreatedAt, err = scanTime("customer.created_at", createdAt)
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}
