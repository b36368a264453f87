package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/api/request"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/service"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/validation"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// Create registers a new customer
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCustomerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateCreateCustomer(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	customer, err := h.customerService.CreateCustomer(req.FullName, req.Phone, req.Address, time.Now())
	if err != nil {
		respondServiceError(w, err, "failed to create customer")
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

// List retrieves every customer with their products and installments
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerService.GetAllCustomers()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve customers")
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

// Get retrieves one customer with their products and installments
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customerService.GetCustomer(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve customer")
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

// Update rewrites a customer's profile fields
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateCustomerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateUpdateCustomer(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	customer, err := h.customerService.UpdateCustomer(chi.URLParam(r, "uuid"), req.FullName, req.Phone, req.Address)
	if err != nil {
		respondServiceError(w, err, "failed to update customer")
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

// Delete removes a customer; products and installments cascade
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.customerService.DeleteCustomer(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete customer")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
