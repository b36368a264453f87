package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/api/request"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/service"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/validation"
)

// PurchaseHandler handles product purchase HTTP requests
type PurchaseHandler struct {
	productService *service.ProductService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(productService *service.ProductService) *PurchaseHandler {
	return &PurchaseHandler{
		productService: productService,
	}
}

// Create sells a catalog product to a customer under one of its pricing plans
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePurchaseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateCreatePurchase(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	product, err := h.productService.CreatePurchase(req.CustomerID, req.CatalogProductID, req.PlanID, req.Name, time.Now())
	if err != nil {
		respondServiceError(w, err, "failed to create purchase")
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// Get retrieves a product with its installments
func (h *PurchaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.GetProduct(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Delete removes a product and all of its installments
func (h *PurchaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.productService.DeleteProduct(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete product")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
