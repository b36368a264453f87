package handlers

import (
	"net/http"

	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/service"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Summary computes the collection report for an inclusive date range.
// Both start and end query parameters are required, YYYY-MM-DD.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")
	if startParam == "" || endParam == "" {
		respondServiceError(w, apperrors.ErrInvalidDateRange, "start and end are required")
		return
	}

	start, err := parseDate(startParam)
	if err != nil {
		respondServiceError(w, apperrors.ErrInvalidDateRange, "failed to parse start date")
		return
	}
	end, err := parseDate(endParam)
	if err != nil {
		respondServiceError(w, apperrors.ErrInvalidDateRange, "failed to parse end date")
		return
	}

	summary, err := h.reportService.GetSummary(start, end)
	if err != nil {
		respondServiceError(w, err, "failed to compute summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// Dashboard computes the lifetime totals
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reportService.GetDashboard()
	if err != nil {
		respondServiceError(w, err, "failed to compute dashboard")
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}
