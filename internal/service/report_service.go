package service

import (
	"sort"
	"time"

	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
	"github.com/shopspring/decimal"
)

// ReportService computes the period summary and the lifetime dashboard from
// the customer, product and expense tables.
type ReportService struct {
	customerRepo *repository.CustomerRepository
	productRepo  *repository.ProductRepository
	expenseRepo  *repository.ExpenseRepository
}

// NewReportService creates a new ReportService with the provided repository dependencies.
func NewReportService(
	customerRepo *repository.CustomerRepository,
	productRepo *repository.ProductRepository,
	expenseRepo *repository.ExpenseRepository,
) *ReportService {
	return &ReportService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		expenseRepo:  expenseRepo,
	}
}

// CustomerCollection is one customer's collected total within a report period.
type CustomerCollection struct {
	CustomerID   string          `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Amount       decimal.Decimal `json:"amount"`
}

// Summary is the period report: money collected (settled installments plus
// down payments of purchases made in the period), expenses, and the net.
type Summary struct {
	Start                 time.Time            `json:"start"`
	End                   time.Time            `json:"end"`
	InstallmentsCollected decimal.Decimal      `json:"installmentsCollected"`
	DownPayments          decimal.Decimal      `json:"downPayments"`
	TotalCollected        decimal.Decimal      `json:"totalCollected"`
	TotalExpenses         decimal.Decimal      `json:"totalExpenses"`
	NetProfit             decimal.Decimal      `json:"netProfit"`
	ByCustomer            []CustomerCollection `json:"byCustomer"`
	Expenses              []model.Expense      `json:"expenses"`
}

// Dashboard carries the lifetime totals shown on the landing page.
type Dashboard struct {
	CustomerCount       int             `json:"customerCount"`
	ProductCount        int             `json:"productCount"`
	TotalSales          decimal.Decimal `json:"totalSales"`
	TotalCollected      decimal.Decimal `json:"totalCollected"`
	TotalOutstanding    decimal.Decimal `json:"totalOutstanding"`
	OpenInstallments    int             `json:"openInstallments"`
	SettledInstallments int             `json:"settledInstallments"`
	TotalExpenses       decimal.Decimal `json:"totalExpenses"`
}

// GetSummary computes the collection report for the inclusive [start, end]
// date range. An installment counts when it was settled inside the range; a
// down payment counts when its purchase was made inside the range. Partially
// paid installments are excluded until they settle.
func (s *ReportService) GetSummary(start, end time.Time) (Summary, error) {
	if end.Before(start) {
		return Summary{}, apperrors.ErrInvalidDateRange
	}

	customers, err := s.customerRepo.GetAll()
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Start:                 start,
		End:                   end,
		InstallmentsCollected: decimal.Zero,
		DownPayments:          decimal.Zero,
		TotalCollected:        decimal.Zero,
		TotalExpenses:         decimal.Zero,
		NetProfit:             decimal.Zero,
		ByCustomer:            []CustomerCollection{},
	}

	for _, customer := range customers {
		products, err := s.productRepo.GetByCustomerID(customer.ID)
		if err != nil {
			return Summary{}, err
		}

		collected := decimal.Zero
		for _, product := range products {
			if dateInRange(product.CreatedAt, start, end) {
				summary.DownPayments = summary.DownPayments.Add(product.DownPayment)
				collected = collected.Add(product.DownPayment)
			}
			for _, inst := range product.Installments {
				if inst.PaidAt == nil || !dateInRange(*inst.PaidAt, start, end) {
					continue
				}
				summary.InstallmentsCollected = summary.InstallmentsCollected.Add(inst.AmountPaid)
				collected = collected.Add(inst.AmountPaid)
			}
		}

		if collected.IsPositive() {
			summary.ByCustomer = append(summary.ByCustomer, CustomerCollection{
				CustomerID:   customer.ID,
				CustomerName: customer.FullName,
				Amount:       collected,
			})
		}
	}

	sort.SliceStable(summary.ByCustomer, func(i, j int) bool {
		return summary.ByCustomer[i].Amount.GreaterThan(summary.ByCustomer[j].Amount)
	})

	expenses, err := s.expenseRepo.GetByDateRange(start, end)
	if err != nil {
		return Summary{}, err
	}
	summary.Expenses = expenses
	for _, e := range expenses {
		summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
	}

	summary.TotalCollected = summary.InstallmentsCollected.Add(summary.DownPayments)
	summary.NetProfit = summary.TotalCollected.Sub(summary.TotalExpenses)
	return summary, nil
}

// GetDashboard computes the lifetime totals across every customer and expense.
func (s *ReportService) GetDashboard() (Dashboard, error) {
	customers, err := s.customerRepo.GetAll()
	if err != nil {
		return Dashboard{}, err
	}

	dashboard := Dashboard{
		CustomerCount:    len(customers),
		TotalSales:       decimal.Zero,
		TotalCollected:   decimal.Zero,
		TotalOutstanding: decimal.Zero,
		TotalExpenses:    decimal.Zero,
	}

	for _, customer := range customers {
		products, err := s.productRepo.GetByCustomerID(customer.ID)
		if err != nil {
			return Dashboard{}, err
		}
		dashboard.ProductCount += len(products)
		for _, product := range products {
			dashboard.TotalSales = dashboard.TotalSales.Add(product.TotalPrice)
			dashboard.TotalCollected = dashboard.TotalCollected.Add(product.PaidAmount())
			dashboard.TotalOutstanding = dashboard.TotalOutstanding.Add(product.RemainingAmount())
			// IsSettled covers on-hold, so every installment lands in
			// exactly one bucket.
			for _, inst := range product.Installments {
				if inst.IsSettled() {
					dashboard.SettledInstallments++
				} else {
					dashboard.OpenInstallments++
				}
			}
		}
	}

	expenses, err := s.expenseRepo.GetAll()
	if err != nil {
		return Dashboard{}, err
	}
	for _, e := range expenses {
		dashboard.TotalExpenses = dashboard.TotalExpenses.Add(e.Amount)
	}

	return dashboard, nil
}

// dateInRange reports whether t's calendar date falls within [start, end],
// comparing dates only so a timestamp late on the end day still counts.
func dateInRange(t, start, end time.Time) bool {
	d := t.Format("2006-01-02")
	return d >= start.Format("2006-01-02") && d <= end.Format("2006-01-02")
}
