package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
	"github.com/shopspring/decimal"
)

// CustomerBuilder provides a fluent interface for creating test customers.
//
// Example usage:
//
//	// Simple creation with defaults
//	customer := testutil.NewCustomer().Build(t, db)
//
//	// Customized customer
//	customer := testutil.NewCustomer().
//	    WithName("Ahmed Ali").
//	    WithPhone("07701234567").
//	    Build(t, db)
type CustomerBuilder struct {
	ID       string
	FullName string
	Phone    string
	Address  string
}

// NewCustomer creates a CustomerBuilder with sensible defaults.
func NewCustomer() *CustomerBuilder {
	return &CustomerBuilder{
		ID:       MakeID(),
		FullName: "Test Customer",
		Phone:    "07700000000",
		Address:  "Test Street 1",
	}
}

// WithID sets a custom ID.
func (b *CustomerBuilder) WithID(id string) *CustomerBuilder {
	b.ID = id
	return b
}

// WithName sets a custom full name.
func (b *CustomerBuilder) WithName(name string) *CustomerBuilder {
	b.FullName = name
	return b
}

// WithPhone sets a custom phone number.
func (b *CustomerBuilder) WithPhone(phone string) *CustomerBuilder {
	b.Phone = phone
	return b
}

// Build persists the customer and returns it.
func (b *CustomerBuilder) Build(t *testing.T, db *sql.DB) model.Customer {
	t.Helper()

	customer := model.Customer{
		ID:        b.ID,
		FullName:  b.FullName,
		Phone:     b.Phone,
		Address:   b.Address,
		Products:  []model.Product{},
		CreatedAt: time.Now().UTC(),
	}
	if err := repository.NewCustomerRepository(db).Create(customer); err != nil {
		t.Fatalf("Failed to create test customer: %v", err)
	}
	return customer
}

// ProductBuilder provides a fluent interface for creating test products with
// installment schedules.
type ProductBuilder struct {
	ID                string
	CustomerID        string
	PortalID          string
	Name              string
	TotalPrice        decimal.Decimal
	DownPayment       decimal.Decimal
	InstallmentAmount decimal.Decimal
	InstallmentsCount int
	FirstDueDate      time.Time
}

// NewProduct creates a ProductBuilder with sensible defaults: a 1,200,000
// product with a 200,000 down payment and ten monthly installments of
// 100,000 starting one month from now.
func NewProduct(customerID string) *ProductBuilder {
	return &ProductBuilder{
		ID:                MakeID(),
		CustomerID:        customerID,
		PortalID:          MakeID(),
		Name:              "Test Product",
		TotalPrice:        decimal.NewFromInt(1200000),
		DownPayment:       decimal.NewFromInt(200000),
		InstallmentAmount: decimal.NewFromInt(100000),
		InstallmentsCount: 10,
		FirstDueDate:      time.Now().UTC().AddDate(0, 1, 0),
	}
}

// WithID sets a custom ID.
func (b *ProductBuilder) WithID(id string) *ProductBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.Name = name
	return b
}

// WithTotals sets the total price and down payment.
func (b *ProductBuilder) WithTotals(totalPrice, downPayment decimal.Decimal) *ProductBuilder {
	b.TotalPrice = totalPrice
	b.DownPayment = downPayment
	return b
}

// WithSchedule sets the installment amount, count and first due date.
func (b *ProductBuilder) WithSchedule(amount decimal.Decimal, count int, firstDue time.Time) *ProductBuilder {
	b.InstallmentAmount = amount
	b.InstallmentsCount = count
	b.FirstDueDate = firstDue
	return b
}

// Build persists the product with its installment schedule and returns it.
func (b *ProductBuilder) Build(t *testing.T, db *sql.DB) model.Product {
	t.Helper()

	product := model.Product{
		ID:                b.ID,
		CustomerID:        b.CustomerID,
		PortalID:          b.PortalID,
		Name:              b.Name,
		TotalPrice:        b.TotalPrice,
		DownPayment:       b.DownPayment,
		InstallmentsCount: b.InstallmentsCount,
		Installments:      make([]model.Installment, 0, b.InstallmentsCount),
		CreatedAt:         time.Now().UTC(),
	}

	due := b.FirstDueDate
	for i := 0; i < b.InstallmentsCount; i++ {
		product.Installments = append(product.Installments, model.Installment{
			ID:         MakeID(),
			ProductID:  product.ID,
			DueDate:    due,
			Amount:     b.InstallmentAmount,
			AmountPaid: decimal.Zero,
			Status:     model.StatusUnpaid,
		})
		due = due.AddDate(0, 1, 0)
	}

	if err := repository.NewProductRepository(db).CreateWithInstallments(product); err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return product
}

// CatalogProductBuilder provides a fluent interface for creating test catalog
// products with pricing plans.
type CatalogProductBuilder struct {
	ID    string
	Name  string
	Plans []model.PricingPlan
}

// NewCatalogProduct creates a CatalogProductBuilder with one default plan.
func NewCatalogProduct() *CatalogProductBuilder {
	id := MakeID()
	return &CatalogProductBuilder{
		ID:   id,
		Name: "Test Catalog Product",
		Plans: []model.PricingPlan{{
			ID:                MakeID(),
			CatalogProductID:  id,
			Name:              "Standard",
			TotalPrice:        decimal.NewFromInt(1200000),
			DownPayment:       decimal.NewFromInt(200000),
			InstallmentsCount: 10,
		}},
	}
}

// WithName sets a custom name.
func (b *CatalogProductBuilder) WithName(name string) *CatalogProductBuilder {
	b.Name = name
	return b
}

// WithPlan replaces the plans with a single custom plan.
func (b *CatalogProductBuilder) WithPlan(name string, totalPrice, downPayment decimal.Decimal, count int) *CatalogProductBuilder {
	b.Plans = []model.PricingPlan{{
		ID:                MakeID(),
		CatalogProductID:  b.ID,
		Name:              name,
		TotalPrice:        totalPrice,
		DownPayment:       downPayment,
		InstallmentsCount: count,
	}}
	return b
}

// Build persists the catalog product with its plans and returns it.
func (b *CatalogProductBuilder) Build(t *testing.T, db *sql.DB) model.CatalogProduct {
	t.Helper()

	product := model.CatalogProduct{
		ID:         b.ID,
		Name:       b.Name,
		TotalPrice: b.Plans[0].TotalPrice,
		Plans:      b.Plans,
		CreatedAt:  time.Now().UTC(),
	}
	if err := repository.NewCatalogRepository(db).Create(product); err != nil {
		t.Fatalf("Failed to create test catalog product: %v", err)
	}
	return product
}

// MakeExpense persists a test expense and returns it.
func MakeExpense(t *testing.T, db *sql.DB, amount decimal.Decimal, category model.ExpenseCategory, date time.Time) model.Expense {
	t.Helper()

	expense := model.Expense{
		ID:          MakeID(),
		Description: "Test expense",
		Amount:      amount,
		Category:    category,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}
	if err := repository.NewExpenseRepository(db).Create(expense); err != nil {
		t.Fatalf("Failed to create test expense: %v", err)
	}
	return expense
}
