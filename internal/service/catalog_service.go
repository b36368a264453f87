package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
)

// CatalogService manages the sellable product templates and their pricing
// plans. Plans are templates only: editing or deleting them never touches
// products already sold.
type CatalogService struct {
	catalogRepo *repository.CatalogRepository
}

// NewCatalogService creates a new CatalogService with the provided repository dependency.
func NewCatalogService(catalogRepo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// CreateCatalogProduct adds a product template with its pricing plans.
func (s *CatalogService) CreateCatalogProduct(p model.CatalogProduct, now time.Time) (model.CatalogProduct, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = now
	for i := range p.Plans {
		p.Plans[i].ID = uuid.NewString()
		p.Plans[i].CatalogProductID = p.ID
	}
	if err := s.catalogRepo.Create(p); err != nil {
		return model.CatalogProduct{}, err
	}
	return p, nil
}

// GetAllCatalogProducts retrieves every product template with its plans.
func (s *CatalogService) GetAllCatalogProducts() ([]model.CatalogProduct, error) {
	return s.catalogRepo.GetAll()
}

// GetCatalogProduct retrieves one product template with its plans.
func (s *CatalogService) GetCatalogProduct(catalogProductID string) (model.CatalogProduct, error) {
	return s.catalogRepo.GetByID(catalogProductID)
}

// UpdateCatalogProduct rewrites a product template, replacing its plans.
// Incoming plans without an ID are new and get one minted.
func (s *CatalogService) UpdateCatalogProduct(p model.CatalogProduct) (model.CatalogProduct, error) {
	existing, err := s.catalogRepo.GetByID(p.ID)
	if err != nil {
		return model.CatalogProduct{}, err
	}
	p.CreatedAt = existing.CreatedAt

	for i := range p.Plans {
		if p.Plans[i].ID == "" {
			p.Plans[i].ID = uuid.NewString()
		}
		p.Plans[i].CatalogProductID = p.ID
	}
	if err := s.catalogRepo.Update(p); err != nil {
		return model.CatalogProduct{}, err
	}
	return p, nil
}

// DeleteCatalogProduct removes a product template and its plans.
func (s *CatalogService) DeleteCatalogProduct(catalogProductID string) error {
	return s.catalogRepo.Delete(catalogProductID)
}
