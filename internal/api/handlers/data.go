package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"zerim-todo/internal/api/response"
	"zerim-todo/internal/logging"
	"zerim-todo/internal/store"
	"zerim-todo/pkg/types"
)

const exportVersion = "1.0.0"

// DataHandler serves the data management endpoints: export, import, reset and
// the health check.
type DataHandler struct {
	store  *store.MemoryStore
	logger logging.Logger
}

// NewDataHandler creates a data handler.
func NewDataHandler(s *store.MemoryStore, logger logging.Logger) *DataHandler {
	return &DataHandler{store: s, logger: logger.WithComponent("data")}
}

// exportPayload is the import/export document shape.
type exportPayload struct {
	Tasks      []types.Task     `json:"tasks"`
	Categories []types.Category `json:"categories"`
	ExportDate string           `json:"export_date,omitempty"`
	Version    string           `json:"version,omitempty"`
}

// Export handles GET /api/export: the full task and category collections plus
// an export timestamp and format version.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot(r.Context())
	response.WriteJSON(w, http.StatusOK, exportPayload{
		Tasks:      snap.Tasks,
		Categories: snap.Categories,
		ExportDate: time.Now().Format(time.RFC3339),
		Version:    exportVersion,
	})
}

// Import handles POST /api/import. Tasks are appended; categories whose ID is
// already present are skipped. The reported counts are the input counts, which
// is what existing clients display.
func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	var payload exportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.WriteBadRequest(w, "invalid request body", err.Error())
		return
	}

	h.store.Import(r.Context(), payload.Tasks, payload.Categories)
	h.logger.Info("data imported",
		"tasks", len(payload.Tasks),
		"categories", len(payload.Categories))

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":             "Data imported successfully",
		"tasks_imported":      len(payload.Tasks),
		"categories_imported": len(payload.Categories),
	})
}

// Reset handles POST /api/reset: drops all tasks and restores the default
// categories.
func (h *DataHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.store.Reset(r.Context())
	h.logger.Warn("all data reset")
	response.WriteMessage(w, "All data has been reset")
}

// healthResponse is the health check body.
type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	store.Counts
}

// Health handles GET /api/health.
func (h *DataHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Counts:    h.store.Counts(r.Context()),
	})
}
