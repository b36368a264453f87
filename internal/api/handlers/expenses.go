package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/api/request"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/service"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/validation"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// Create records a new expense
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateCreateExpense(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondServiceError(w, err, "invalid expense date")
		return
	}

	expense, err := h.expenseService.CreateExpense(req.Description, req.Amount, model.ExpenseCategory(req.Category), date, time.Now())
	if err != nil {
		respondServiceError(w, err, "failed to create expense")
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

// List retrieves every expense, most recent first
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenseService.GetAllExpenses()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve expenses")
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}

// Delete removes an expense
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.expenseService.DeleteExpense(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete expense")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
