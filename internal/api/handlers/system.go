package handlers

import (
	"net/http"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/service"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/validation"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService   *service.SystemService
	settingDefaults map[string]string
}

// NewSystemHandler creates a new SystemHandler. settingDefaults supplies the
// value reported for each known setting that has no stored override.
func NewSystemHandler(systemService *service.SystemService, settingDefaults map[string]string) *SystemHandler {
	return &SystemHandler{
		systemService:   systemService,
		settingDefaults: settingDefaults,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		}
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	response := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	respondJSON(w, http.StatusOK, response)
}

// VersionResponse represents the version check response
type VersionResponse struct {
	Version string `json:"version"`
}

// Version returns the application version
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, VersionResponse{Version: h.systemService.CheckVersion()})
}

// SettingsResponse represents the stored settings merged over their defaults
type SettingsResponse struct {
	Settings map[string]string `json:"settings"`
}

// Settings returns every known setting with stored overrides applied
func (h *SystemHandler) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.systemService.GetSettings(h.settingDefaults)
	if err != nil {
		respondServiceError(w, err, "failed to read settings")
		return
	}
	respondJSON(w, http.StatusOK, SettingsResponse{Settings: settings})
}

// UpdateSettings stores the posted setting values
func (h *SystemHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if !decodeBody(w, r, &values) {
		return
	}

	if err := validation.ValidateSettings(values); err != nil {
		respondServiceError(w, err, "invalid settings")
		return
	}

	if err := h.systemService.UpdateSettings(values); err != nil {
		respondServiceError(w, err, "failed to update settings")
		return
	}

	settings, err := h.systemService.GetSettings(h.settingDefaults)
	if err != nil {
		respondServiceError(w, err, "failed to read settings")
		return
	}
	respondJSON(w, http.StatusOK, SettingsResponse{Settings: settings})
}
