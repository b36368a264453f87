package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/service"
)

// maxBackupBytes caps the restore payload size.
const maxBackupBytes = 32 << 20

// BackupHandler handles full-dataset export and restore HTTP requests
type BackupHandler struct {
	importService *service.ImportService
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(importService *service.ImportService) *BackupHandler {
	return &BackupHandler{
		importService: importService,
	}
}

// Export returns the complete dataset as one JSON document
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	backup, err := h.importService.Export(time.Now())
	if err != nil {
		respondServiceError(w, err, "failed to export backup")
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="backup.json"`)
	respondJSON(w, http.StatusOK, backup)
}

// RestoreResponse represents the restore result
type RestoreResponse struct {
	Restored bool `json:"restored"`
}

// Restore replaces the whole dataset with the posted backup document
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBackupBytes))
	if err != nil {
		errorResponse := map[string]string{
			"error":  "failed to read backup payload",
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusBadRequest, errorResponse)
		return
	}

	if err := h.importService.Restore(raw, time.Now()); err != nil {
		respondServiceError(w, err, "failed to restore backup")
		return
	}
	respondJSON(w, http.StatusOK, RestoreResponse{Restored: true})
}
