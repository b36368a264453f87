package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/notify"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/service"
)

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.NewString()
}

func NewTestCustomerService(t *testing.T, db *sql.DB) *service.CustomerService {
	t.Helper()

	return service.NewCustomerService(
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
	)
}

func NewTestProductService(t *testing.T, db *sql.DB) *service.ProductService {
	t.Helper()

	return service.NewProductService(
		repository.NewProductRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewCatalogRepository(db),
	)
}

func NewTestInstallmentService(t *testing.T, db *sql.DB) *service.InstallmentService {
	t.Helper()

	return service.NewInstallmentService(
		repository.NewInstallmentRepository(db),
		repository.NewProductRepository(db),
	)
}

func NewTestCatalogService(t *testing.T, db *sql.DB) *service.CatalogService {
	t.Helper()

	return service.NewCatalogService(repository.NewCatalogRepository(db))
}

func NewTestExpenseService(t *testing.T, db *sql.DB) *service.ExpenseService {
	t.Helper()

	return service.NewExpenseService(repository.NewExpenseRepository(db))
}

func NewTestReportService(t *testing.T, db *sql.DB) *service.ReportService {
	t.Helper()

	return service.NewReportService(
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
		repository.NewExpenseRepository(db),
	)
}

// NewTestReminderService wires a reminder service around the given
// dispatcher, with a zero dispatch delay so tests run instantly.
func NewTestReminderService(t *testing.T, db *sql.DB, dispatcher notify.Dispatcher, thresholdDays int, cooldown time.Duration) *service.ReminderService {
	t.Helper()

	return service.NewReminderService(
		repository.NewInstallmentRepository(db),
		repository.NewProductRepository(db),
		repository.NewReminderRepository(db),
		repository.NewSettingRepository(db),
		dispatcher,
		service.ReminderOptions{
			UpcomingThresholdDays: thresholdDays,
			Cooldown:              cooldown,
			CountryCode:           "964",
			Currency:              "IQD",
		},
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, repository.NewSettingRepository(db))
}

func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	return service.NewImportService(
		repository.NewBackupRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
		repository.NewCatalogRepository(db),
		repository.NewExpenseRepository(db),
	)
}
