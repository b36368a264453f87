package service

import (
	"time"

	"github.com/google/uuid"
	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
	"github.com/shopspring/decimal"
)

// ProductService handles purchase creation, product deletion and the
// aggregate views derived from a product's installments.
type ProductService struct {
	productRepo  *repository.ProductRepository
	customerRepo *repository.CustomerRepository
	catalogRepo  *repository.CatalogRepository
}

// NewProductService creates a new ProductService with the provided repository dependencies.
func NewProductService(
	productRepo *repository.ProductRepository,
	customerRepo *repository.CustomerRepository,
	catalogRepo *repository.CatalogRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		catalogRepo:  catalogRepo,
	}
}

// CreatePurchase sells a catalog product to a customer under one of its
// pricing plans. The plan's figures are copied onto the new product, a fresh
// portal token is minted, and the schedule generator produces the
// installments; everything is committed as one unit.
func (s *ProductService) CreatePurchase(customerID, catalogProductID, planID, nameOverride string, now time.Time) (model.Product, error) {
	if _, err := s.customerRepo.GetByID(customerID); err != nil {
		return model.Product{}, err
	}

	catalogProduct, err := s.catalogRepo.GetByID(catalogProductID)
	if err != nil {
		return model.Product{}, err
	}
	plan, err := findPlan(catalogProduct, planID)
	if err != nil {
		return model.Product{}, err
	}

	name := catalogProduct.Name
	if nameOverride != "" {
		name = nameOverride
	}

	product := model.Product{
		ID:                uuid.NewString(),
		CustomerID:        customerID,
		PortalID:          uuid.NewString(),
		CatalogProductID:  catalogProduct.ID,
		Name:              name,
		PlanName:          plan.Name,
		TotalPrice:        plan.TotalPrice,
		DownPayment:       plan.DownPayment,
		InstallmentsCount: plan.InstallmentsCount,
		CreatedAt:         now,
	}
	product.Installments = GenerateInstallments(product.ID, plan.TotalPrice, plan.DownPayment, plan.InstallmentsCount, now)

	if err := s.productRepo.CreateWithInstallments(product); err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// GetProduct retrieves a product with its installments.
func (s *ProductService) GetProduct(productID string) (model.Product, error) {
	return s.productRepo.GetByID(productID)
}

// DeleteProduct removes a product and all of its installments. Installments
// are never deleted individually; whole-product deletion is the only way.
func (s *ProductService) DeleteProduct(productID string) error {
	return s.productRepo.Delete(productID)
}

// PortalView is the read-only snapshot served to a customer through their
// portal link.
type PortalView struct {
	CustomerName string          `json:"customerName"`
	Product      model.Product   `json:"product"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	Remaining    decimal.Decimal `json:"remainingAmount"`
	Progress     float64         `json:"progress"`
}

// ResolvePortal resolves a public portal token to its owning (customer,
// product) pair with the product's aggregate figures.
func (s *ProductService) ResolvePortal(portalID string) (PortalView, error) {
	product, err := s.productRepo.GetByPortalID(portalID)
	if err != nil {
		return PortalView{}, err
	}
	customer, err := s.customerRepo.GetByID(product.CustomerID)
	if err != nil {
		return PortalView{}, err
	}

	return PortalView{
		CustomerName: customer.FullName,
		Product:      product,
		PaidAmount:   product.PaidAmount(),
		Remaining:    product.RemainingAmount(),
		Progress:     product.ProgressRatio(),
	}, nil
}

func findPlan(p model.CatalogProduct, planID string) (model.PricingPlan, error) {
	for _, plan := range p.Plans {
		if plan.ID == planID {
			return plan, nil
		}
	}
	return model.PricingPlan{}, apperrors.ErrPricingPlanNotFound
}
