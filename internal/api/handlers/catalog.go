package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/api/request"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/service"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/validation"
	"github.com/shopspring/decimal"
)

// CatalogHandler handles catalog product HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// Create adds a sellable product template with its pricing plans
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCatalogProductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateCatalogProduct(req.Name, req.Plans); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	product, err := h.catalogService.CreateCatalogProduct(catalogProductFromRequest(req.Name, req.TotalPrice, req.Category, req.Plans), time.Now())
	if err != nil {
		respondServiceError(w, err, "failed to create catalog product")
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// List retrieves every product template with its plans
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.GetAllCatalogProducts()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve catalog products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Get retrieves one product template with its plans
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogService.GetCatalogProduct(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve catalog product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Update rewrites a product template, replacing its plans
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateCatalogProductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateCatalogProduct(req.Name, req.Plans); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	product := catalogProductFromRequest(req.Name, req.TotalPrice, req.Category, req.Plans)
	product.ID = chi.URLParam(r, "uuid")

	updated, err := h.catalogService.UpdateCatalogProduct(product)
	if err != nil {
		respondServiceError(w, err, "failed to update catalog product")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a product template and its plans
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.DeleteCatalogProduct(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete catalog product")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func catalogProductFromRequest(name string, totalPrice decimal.Decimal, category string, plans []request.PricingPlanRequest) model.CatalogProduct {
	product := model.CatalogProduct{
		Name:       name,
		TotalPrice: totalPrice,
		Category:   category,
		Plans:      make([]model.PricingPlan, len(plans)),
	}
	for i, plan := range plans {
		product.Plans[i] = model.PricingPlan{
			ID:                plan.ID,
			Name:              plan.Name,
			Description:       plan.Description,
			TotalPrice:        plan.TotalPrice,
			DownPayment:       plan.DownPayment,
			InstallmentsCount: plan.InstallmentsCount,
		}
	}
	return product
}
