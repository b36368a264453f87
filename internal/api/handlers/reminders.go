package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/service"
)

// ReminderHandler handles obligation scanning and reminder dispatch HTTP requests
type ReminderHandler struct {
	reminderService *service.ReminderService
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(reminderService *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
	}
}

// Notifications returns the scanner output: overdue installments first, most
// overdue leading, then upcoming ones within the threshold. The threshold
// query parameter overrides the stored setting (and its configured default).
func (h *ReminderHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	threshold := h.reminderService.UpcomingDays()
	if param := r.URL.Query().Get("threshold"); param != "" {
		n, err := strconv.Atoi(param)
		if err != nil || n < 0 {
			errorResponse := map[string]string{
				"error":  "invalid threshold",
				"detail": "threshold must be a non-negative integer",
			}
			respondJSON(w, http.StatusBadRequest, errorResponse)
			return
		}
		threshold = n
	}

	obligations, err := h.reminderService.Scan(time.Now(), threshold)
	if err != nil {
		respondServiceError(w, err, "failed to scan obligations")
		return
	}
	respondJSON(w, http.StatusOK, obligations)
}

// Due returns the overdue installments whose reminder may fire now
func (h *ReminderHandler) Due(w http.ResponseWriter, r *http.Request) {
	due, err := h.reminderService.DueReminders(time.Now())
	if err != nil {
		respondServiceError(w, err, "failed to compute due reminders")
		return
	}
	respondJSON(w, http.StatusOK, due)
}

// DispatchResponse represents the dispatch run result
type DispatchResponse struct {
	Sent int         `json:"sent"`
	Log  interface{} `json:"log"`
}

// Dispatch sends a reminder for every admitted overdue installment
func (h *ReminderHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	sent, err := h.reminderService.Dispatch(r.Context(), time.Now())
	if err != nil {
		respondServiceError(w, err, "failed to dispatch reminders")
		return
	}
	respondJSON(w, http.StatusOK, DispatchResponse{Sent: len(sent), Log: sent})
}

// Log returns today's sent reminders
func (h *ReminderHandler) Log(w http.ResponseWriter, r *http.Request) {
	log, err := h.reminderService.DailyLog(time.Now())
	if err != nil {
		respondServiceError(w, err, "failed to read reminder log")
		return
	}
	respondJSON(w, http.StatusOK, log)
}
