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

// InstallmentHandler handles installment ledger HTTP requests
type InstallmentHandler struct {
	installmentService *service.InstallmentService
}

// NewInstallmentHandler creates a new InstallmentHandler
func NewInstallmentHandler(installmentService *service.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{
		installmentService: installmentService,
	}
}

// Pay records a payment against an installment
func (h *InstallmentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidatePayment(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	inst, err := h.installmentService.ApplyPayment(chi.URLParam(r, "uuid"), req.Amount, time.Now())
	if err != nil {
		respondServiceError(w, err, "failed to record payment")
		return
	}
	respondJSON(w, http.StatusOK, inst)
}

// Edit changes an installment's scheduled amount and due date
func (h *InstallmentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req request.EditInstallmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateEditInstallment(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		respondServiceError(w, err, "invalid due date")
		return
	}

	inst, err := h.installmentService.EditInstallment(chi.URLParam(r, "uuid"), req.Amount, dueDate, time.Now())
	if err != nil {
		respondServiceError(w, err, "failed to edit installment")
		return
	}
	respondJSON(w, http.StatusOK, inst)
}

// BulkStatus applies a status override to a set of installments
func (h *InstallmentHandler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	var req request.BulkStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateBulkStatus(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	installments, err := h.installmentService.BulkSetStatus(req.InstallmentIDs, model.InstallmentStatus(req.Status), time.Now())
	if err != nil {
		respondServiceError(w, err, "failed to update installments")
		return
	}
	respondJSON(w, http.StatusOK, installments)
}

// Add appends a new unpaid installment to a product's schedule
func (h *InstallmentHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.AddInstallmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateAddInstallment(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		respondServiceError(w, err, "invalid due date")
		return
	}

	inst, err := h.installmentService.AddInstallment(chi.URLParam(r, "uuid"), req.Amount, dueDate)
	if err != nil {
		respondServiceError(w, err, "failed to add installment")
		return
	}
	respondJSON(w, http.StatusCreated, inst)
}
