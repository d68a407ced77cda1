package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"zerim-todo/internal/api/response"
	"zerim-todo/internal/events"
	"zerim-todo/internal/logging"
	"zerim-todo/internal/store"
	"zerim-todo/internal/templates"
	"zerim-todo/pkg/types"
)

// TemplateHandler serves the /api/templates endpoint group.
type TemplateHandler struct {
	service *templates.Service
	hub     *events.Hub
	logger  logging.Logger
}

// NewTemplateHandler creates a template handler. The hub may be nil in tests.
func NewTemplateHandler(service *templates.Service, hub *events.Hub, logger logging.Logger) *TemplateHandler {
	return &TemplateHandler{
		service: service,
		hub:     hub,
		logger:  logger.WithComponent("templates"),
	}
}

// List handles GET /api/templates.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, h.service.ListTemplates(r.Context()))
}

// Create handles POST /api/templates.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var template types.TaskTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		response.WriteBadRequest(w, "invalid request body", err.Error())
		return
	}

	created, err := h.service.CreateTemplate(r.Context(), &template)
	if err != nil {
		response.WriteValidationError(w, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusCreated, created)
}

// Use handles POST /api/templates/{id}/use. The body is a flat object of
// placeholder values substituted into the title and description templates.
func (h *TemplateHandler) Use(w http.ResponseWriter, r *http.Request) {
	var values map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		response.WriteBadRequest(w, "invalid request body", err.Error())
		return
	}

	task, err := h.service.UseTemplate(r.Context(), chi.URLParam(r, "id"), values)
	if err != nil {
		if errors.Is(err, store.ErrTemplateNotFound) {
			response.WriteNotFound(w, "Template not found")
			return
		}
		response.WriteValidationError(w, err.Error())
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(events.NewTaskEvent(events.ActionCreated, task.ID, task))
	}
	response.WriteJSON(w, http.StatusCreated, task)
}

// Delete handles DELETE /api/templates/{id}.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.WriteNotFound(w, "Template not found")
		return
	}
	response.WriteMessage(w, "Template deleted successfully")
}
