package service

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
	"github.com/shopspring/decimal"
)

// ImportService restores and exports full-dataset JSON backups. Restore
// accepts backups written by older releases and upgrades them through a fixed
// pipeline of pure migration steps before anything touches the database.
type ImportService struct {
	backupRepo   *repository.BackupRepository
	customerRepo *repository.CustomerRepository
	productRepo  *repository.ProductRepository
	catalogRepo  *repository.CatalogRepository
	expenseRepo  *repository.ExpenseRepository
}

// NewImportService creates a new ImportService with the provided repository dependencies.
func NewImportService(
	backupRepo *repository.BackupRepository,
	customerRepo *repository.CustomerRepository,
	productRepo *repository.ProductRepository,
	catalogRepo *repository.CatalogRepository,
	expenseRepo *repository.ExpenseRepository,
) *ImportService {
	return &ImportService{
		backupRepo:   backupRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		catalogRepo:  catalogRepo,
		expenseRepo:  expenseRepo,
	}
}

// Backup is the export format: the complete dataset as one JSON document.
type Backup struct {
	ExportedAt time.Time              `json:"exportedAt"`
	Customers  []model.Customer       `json:"customers"`
	Catalog    []model.CatalogProduct `json:"catalogProducts"`
	Expenses   []model.Expense        `json:"expenses"`
}

// Export assembles the full dataset for download.
func (s *ImportService) Export(now time.Time) (Backup, error) {
	customers, err := s.customerRepo.GetAll()
	if err != nil {
		return Backup{}, err
	}
	for i := range customers {
		products, err := s.productRepo.GetByCustomerID(customers[i].ID)
		if err != nil {
			return Backup{}, err
		}
		customers[i].Products = products
	}

	catalog, err := s.catalogRepo.GetAll()
	if err != nil {
		return Backup{}, err
	}
	expenses, err := s.expenseRepo.GetAll()
	if err != nil {
		return Backup{}, err
	}

	return Backup{
		ExportedAt: now,
		Customers:  customers,
		Catalog:    catalog,
		Expenses:   expenses,
	}, nil
}

// Restore replaces the whole dataset with the given backup document. Older
// backups are upgraded first: installments missing amountPaid get it
// backfilled from their status, products missing a portal token get one
// minted, and catalog products without pricing plans get a default plan
// synthesized from their base price. The swap is atomic; a corrupt document
// leaves the existing data untouched.
func (s *ImportService) Restore(raw []byte, now time.Time) error {
	var backup legacyBackup
	if err := json.Unmarshal(raw, &backup); err != nil {
		return apperrors.ErrCorruptBackup
	}
	if backup.Customers == nil && backup.Catalog == nil && backup.Expenses == nil {
		return apperrors.ErrCorruptBackup
	}

	customers, err := migrateCustomers(backup.Customers, now)
	if err != nil {
		return err
	}
	catalog, err := migrateCatalog(backup.Catalog, now)
	if err != nil {
		return err
	}
	expenses, err := migrateExpenses(backup.Expenses, now)
	if err != nil {
		return err
	}

	return s.backupRepo.ReplaceAll(customers, catalog, expenses)
}

// Legacy document shapes. Dates arrive as strings in either date-only or
// RFC3339 form, and fields added over time may be absent, so everything
// optional is a pointer or checked for the zero value.
type legacyBackup struct {
	Customers []legacyCustomer       `json:"customers"`
	Catalog   []legacyCatalogProduct `json:"catalogProducts"`
	Expenses  []legacyExpense        `json:"expenses"`
}

type legacyCustomer struct {
	ID        string          `json:"id"`
	FullName  string          `json:"fullName"`
	Name      string          `json:"name"` // older field name
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Products  []legacyProduct `json:"products"`
	CreatedAt string          `json:"createdAt"`
}

type legacyProduct struct {
	ID                string              `json:"id"`
	PortalID          string              `json:"portalId"`
	CatalogProductID  string              `json:"catalogProductId"`
	Name              string              `json:"name"`
	PlanName          string              `json:"planName"`
	TotalPrice        decimal.Decimal     `json:"totalPrice"`
	DownPayment       decimal.Decimal     `json:"downPayment"`
	InstallmentsCount int                 `json:"installmentsCount"`
	Installments      []legacyInstallment `json:"installments"`
	CreatedAt         string              `json:"createdAt"`
}

type legacyInstallment struct {
	ID         string           `json:"id"`
	DueDate    string           `json:"dueDate"`
	Amount     decimal.Decimal  `json:"amount"`
	AmountPaid *decimal.Decimal `json:"amountPaid"`
	Status     string           `json:"status"`
	PaidAt     string           `json:"paidAt"`
}

type legacyCatalogProduct struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Category   string          `json:"category"`
	Plans      []legacyPlan    `json:"plans"`
	CreatedAt  string          `json:"createdAt"`
}

type legacyPlan struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	DownPayment       decimal.Decimal `json:"downPayment"`
	InstallmentsCount int             `json:"installmentsCount"`
}

type legacyExpense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"createdAt"`
}

func migrateCustomers(in []legacyCustomer, now time.Time) ([]model.Customer, error) {
	customers := make([]model.Customer, 0, len(in))
	for _, lc := range in {
		if lc.ID == "" {
			return nil, apperrors.ErrCorruptBackup
		}
		name := lc.FullName
		if name == "" {
			name = lc.Name
		}
		customer := model.Customer{
			ID:        lc.ID,
			FullName:  name,
			Phone:     lc.Phone,
			Address:   lc.Address,
			Products:  []model.Product{},
			CreatedAt: parseLegacyTime(lc.CreatedAt, now),
		}
		for _, lp := range lc.Products {
			product, err := migrateProduct(lp, customer.ID, now)
			if err != nil {
				return nil, err
			}
			customer.Products = append(customer.Products, product)
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

func migrateProduct(lp legacyProduct, customerID string, now time.Time) (model.Product, error) {
	if lp.ID == "" {
		return model.Product{}, apperrors.ErrCorruptBackup
	}

	portalID := lp.PortalID
	if portalID == "" {
		portalID = uuid.NewString()
	}

	product := model.Product{
		ID:                lp.ID,
		CustomerID:        customerID,
		PortalID:          portalID,
		CatalogProductID:  lp.CatalogProductID,
		Name:              lp.Name,
		PlanName:          lp.PlanName,
		TotalPrice:        lp.TotalPrice,
		DownPayment:       lp.DownPayment,
		InstallmentsCount: lp.InstallmentsCount,
		Installments:      make([]model.Installment, 0, len(lp.Installments)),
		CreatedAt:         parseLegacyTime(lp.CreatedAt, now),
	}

	for _, li := range lp.Installments {
		inst, err := migrateInstallment(li, product.ID)
		if err != nil {
			return model.Product{}, err
		}
		product.Installments = append(product.Installments, inst)
	}
	sort.SliceStable(product.Installments, func(i, j int) bool {
		return product.Installments[i].DueDate.Before(product.Installments[j].DueDate)
	})

	product.InstallmentsCount = len(product.Installments)
	return product, nil
}

func migrateInstallment(li legacyInstallment, productID string) (model.Installment, error) {
	if li.ID == "" || li.DueDate == "" {
		return model.Installment{}, apperrors.ErrCorruptBackup
	}
	dueDate, err := repository.ParseTime(li.DueDate)
	if err != nil {
		return model.Installment{}, apperrors.ErrCorruptBackup
	}

	status := model.InstallmentStatus(li.Status)
	switch status {
	case model.StatusUnpaid, model.StatusPartiallyPaid, model.StatusPaid, model.StatusOnHold:
	default:
		status = model.StatusUnpaid
	}

	// Backups from before partial payments have no amountPaid field.
	amountPaid := decimal.Zero
	if li.AmountPaid != nil {
		amountPaid = *li.AmountPaid
	} else if status == model.StatusPaid {
		amountPaid = li.Amount
	}

	inst := model.Installment{
		ID:         li.ID,
		ProductID:  productID,
		DueDate:    dueDate,
		Amount:     li.Amount,
		AmountPaid: amountPaid,
		Status:     status,
	}
	if li.PaidAt != "" {
		paidAt, err := repository.ParseTime(li.PaidAt)
		if err != nil {
			return model.Installment{}, apperrors.ErrCorruptBackup
		}
		inst.PaidAt = &paidAt
	}
	return inst, nil
}

func migrateCatalog(in []legacyCatalogProduct, now time.Time) ([]model.CatalogProduct, error) {
	catalog := make([]model.CatalogProduct, 0, len(in))
	for _, lp := range in {
		if lp.ID == "" {
			return nil, apperrors.ErrCorruptBackup
		}
		p := model.CatalogProduct{
			ID:         lp.ID,
			Name:       lp.Name,
			TotalPrice: lp.TotalPrice,
			Category:   lp.Category,
			Plans:      make([]model.PricingPlan, 0, len(lp.Plans)),
			CreatedAt:  parseLegacyTime(lp.CreatedAt, now),
		}

		for _, plan := range lp.Plans {
			id := plan.ID
			if id == "" {
				id = uuid.NewString()
			}
			p.Plans = append(p.Plans, model.PricingPlan{
				ID:                id,
				CatalogProductID:  p.ID,
				Name:              plan.Name,
				Description:       plan.Description,
				TotalPrice:        plan.TotalPrice,
				DownPayment:       plan.DownPayment,
				InstallmentsCount: plan.InstallmentsCount,
			})
		}

		// Backups from before pricing plans carry only a base price.
		if len(p.Plans) == 0 {
			p.Plans = append(p.Plans, model.PricingPlan{
				ID:                uuid.NewString(),
				CatalogProductID:  p.ID,
				Name:              "Default plan",
				Description:       "Base price plan.",
				TotalPrice:        lp.TotalPrice,
				DownPayment:       decimal.Zero,
				InstallmentsCount: 12,
			})
		}

		catalog = append(catalog, p)
	}
	return catalog, nil
}

func migrateExpenses(in []legacyExpense, now time.Time) ([]model.Expense, error) {
	expenses := make([]model.Expense, 0, len(in))
	for _, le := range in {
		if le.ID == "" {
			return nil, apperrors.ErrCorruptBackup
		}
		date, err := repository.ParseTime(le.Date)
		if err != nil {
			return nil, apperrors.ErrCorruptBackup
		}
		category := model.ExpenseCategory(le.Category)
		if !model.ValidExpenseCategory(category) {
			category = model.ExpenseOther
		}
		expenses = append(expenses, model.Expense{
			ID:          le.ID,
			Description: le.Description,
			Amount:      le.Amount,
			Category:    category,
			Date:        date,
			CreatedAt:   parseLegacyTime(le.CreatedAt, now),
		})
	}
	return expenses, nil
}

// parseLegacyTime falls back to now for records that predate timestamps.
func parseLegacyTime(raw string, now time.Time) time.Time {
	if raw == "" {
		return now
	}
	t, err := repository.ParseTime(raw)
	if err != nil {
		return now
	}
	return t
}
