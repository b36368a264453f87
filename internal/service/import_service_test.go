package service_test

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/testutil"
	"github.com/shopspring/decimal"
)

// TestImportService_Restore tests backup restore and its legacy upgrades.
//
// WHY: Restore is the one operation that replaces everything at once; it must
// upgrade documents written by older releases (no amountPaid, no portalId, no
// pricing plans) and must refuse corrupt input without touching existing data.
func TestImportService_Restore(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	t.Run("restores a current backup document", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		raw := []byte(`{
			"customers": [{
				"id": "c1", "fullName": "Ahmed Ali", "phone": "07701234567",
				"products": [{
					"id": "p1", "portalId": "portal-1", "name": "Fridge",
					"totalPrice": "1200000", "downPayment": "200000",
					"installments": [
						{"id": "i1", "dueDate": "2026-02-01", "amount": "100000", "amountPaid": "100000", "status": "paid", "paidAt": "2026-02-01"},
						{"id": "i2", "dueDate": "2026-03-01", "amount": "100000", "amountPaid": "0", "status": "unpaid"}
					]
				}]
			}],
			"catalogProducts": [],
			"expenses": [{"id": "e1", "description": "Rent", "amount": "500000", "category": "rent", "date": "2026-01-05"}]
		}`)

		if err := svc.Restore(raw, now); err != nil {
			t.Fatalf("Restore() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "customer", 1)
		testutil.AssertRowCount(t, db, "product", 1)
		testutil.AssertRowCount(t, db, "installment", 2)
		testutil.AssertRowCount(t, db, "expense", 1)

		prodSvc := testutil.NewTestProductService(t, db)
		product, err := prodSvc.GetProduct("p1")
		if err != nil {
			t.Fatalf("GetProduct() returned unexpected error: %v", err)
		}
		if product.PortalID != "portal-1" {
			t.Errorf("Expected portal ID preserved, got %q", product.PortalID)
		}
		if product.Installments[0].Status != model.StatusPaid {
			t.Errorf("Expected first installment paid, got %s", product.Installments[0].Status)
		}
	})

	t.Run("backfills amountPaid from status on old backups", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		// Pre-partial-payment backups carry no amountPaid at all.
		raw := []byte(`{
			"customers": [{
				"id": "c1", "name": "Old Customer",
				"products": [{
					"id": "p1", "name": "TV", "totalPrice": "500000", "downPayment": "100000",
					"installments": [
						{"id": "i1", "dueDate": "2025-06-01", "amount": "200000", "status": "paid"},
						{"id": "i2", "dueDate": "2025-07-01", "amount": "200000", "status": "unpaid"}
					]
				}]
			}]
		}`)

		if err := svc.Restore(raw, now); err != nil {
			t.Fatalf("Restore() returned unexpected error: %v", err)
		}

		prodSvc := testutil.NewTestProductService(t, db)
		product, err := prodSvc.GetProduct("p1")
		if err != nil {
			t.Fatalf("GetProduct() returned unexpected error: %v", err)
		}

		if !product.Installments[0].AmountPaid.Equal(decimal.NewFromInt(200000)) {
			t.Errorf("Expected paid installment backfilled to 200000, got %s", product.Installments[0].AmountPaid)
		}
		if !product.Installments[1].AmountPaid.IsZero() {
			t.Errorf("Expected unpaid installment backfilled to zero, got %s", product.Installments[1].AmountPaid)
		}
		if product.PortalID == "" {
			t.Error("Expected a portal ID to be minted for the legacy product")
		}
		// Older "name" field maps onto fullName.
		custSvc := testutil.NewTestCustomerService(t, db)
		customer, err := custSvc.GetCustomer("c1")
		if err != nil {
			t.Fatalf("GetCustomer() returned unexpected error: %v", err)
		}
		if customer.FullName != "Old Customer" {
			t.Errorf("Expected fullName mapped from legacy name, got %q", customer.FullName)
		}
	})

	t.Run("synthesizes a default plan for planless catalog products", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		raw := []byte(`{
			"catalogProducts": [{"id": "cat1", "name": "Washer", "totalPrice": "800000"}]
		}`)

		if err := svc.Restore(raw, now); err != nil {
			t.Fatalf("Restore() returned unexpected error: %v", err)
		}

		catSvc := testutil.NewTestCatalogService(t, db)
		product, err := catSvc.GetCatalogProduct("cat1")
		if err != nil {
			t.Fatalf("GetCatalogProduct() returned unexpected error: %v", err)
		}

		if len(product.Plans) != 1 {
			t.Fatalf("Expected one synthesized plan, got %d", len(product.Plans))
		}
		plan := product.Plans[0]
		if !plan.TotalPrice.Equal(decimal.NewFromInt(800000)) {
			t.Errorf("Expected plan price 800000 from the base price, got %s", plan.TotalPrice)
		}
		if !plan.DownPayment.IsZero() {
			t.Errorf("Expected zero down payment, got %s", plan.DownPayment)
		}
		if plan.InstallmentsCount != 12 {
			t.Errorf("Expected 12 installments, got %d", plan.InstallmentsCount)
		}
	})

	t.Run("unknown expense category falls back to other", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		raw := []byte(`{
			"expenses": [{"id": "e1", "description": "Misc", "amount": "1000", "category": "snacks", "date": "2026-01-05"}]
		}`)

		if err := svc.Restore(raw, now); err != nil {
			t.Fatalf("Restore() returned unexpected error: %v", err)
		}

		expenses, err := testutil.NewTestExpenseService(t, db).GetAllExpenses()
		if err != nil {
			t.Fatalf("GetAllExpenses() returned unexpected error: %v", err)
		}
		if len(expenses) != 1 || expenses[0].Category != model.ExpenseOther {
			t.Errorf("Expected category other, got %+v", expenses)
		}
	})

	t.Run("corrupt document leaves existing data untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		customer := testutil.NewCustomer().Build(t, db)
		testutil.NewProduct(customer.ID).Build(t, db)

		for name, raw := range map[string][]byte{
			"invalid JSON":     []byte(`{not json`),
			"empty document":   []byte(`{}`),
			"customer sans ID": []byte(`{"customers": [{"fullName": "No ID"}]}`),
		} {
			if err := svc.Restore(raw, now); !errors.Is(err, apperrors.ErrCorruptBackup) {
				t.Errorf("%s: expected ErrCorruptBackup, got %v", name, err)
			}
		}

		testutil.AssertRowCount(t, db, "customer", 1)
		testutil.AssertRowCount(t, db, "product", 1)
	})
}

// TestImportService_Export tests the full-dataset export.
//
// WHY: Export must produce a document Restore accepts unchanged, so a user
// can round-trip their data across installs.
func TestImportService_Export(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	t.Run("exports the complete dataset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		customer := testutil.NewCustomer().Build(t, db)
		testutil.NewProduct(customer.ID).Build(t, db)
		testutil.NewCatalogProduct().Build(t, db)
		testutil.MakeExpense(t, db, decimal.NewFromInt(10000), model.ExpenseBills, now)

		backup, err := svc.Export(now)
		if err != nil {
			t.Fatalf("Export() returned unexpected error: %v", err)
		}

		if !backup.ExportedAt.Equal(now) {
			t.Errorf("Expected exportedAt %s, got %s", now, backup.ExportedAt)
		}
		if len(backup.Customers) != 1 {
			t.Fatalf("Expected 1 customer, got %d", len(backup.Customers))
		}
		if len(backup.Customers[0].Products) != 1 {
			t.Errorf("Expected the customer's product embedded, got %d", len(backup.Customers[0].Products))
		}
		if len(backup.Catalog) != 1 || len(backup.Expenses) != 1 {
			t.Errorf("Expected 1 catalog product and 1 expense, got %d and %d", len(backup.Catalog), len(backup.Expenses))
		}
	})
}
