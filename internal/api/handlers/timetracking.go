package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"zerim-todo/internal/api/response"
	"zerim-todo/internal/logging"
	"zerim-todo/internal/store"
	"zerim-todo/internal/timetracking"
)

// TimeTrackingHandler serves the /api/time-entries and /api/pomodoro endpoint
// groups.
type TimeTrackingHandler struct {
	service *timetracking.Service
	logger  logging.Logger
}

// NewTimeTrackingHandler creates a time tracking handler.
func NewTimeTrackingHandler(service *timetracking.Service, logger logging.Logger) *TimeTrackingHandler {
	return &TimeTrackingHandler{
		service: service,
		logger:  logger.WithComponent("timetracking"),
	}
}

// ListEntries handles GET /api/time-entries?task_id=....
func (h *TimeTrackingHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries := h.service.ListEntries(r.Context(), r.URL.Query().Get("task_id"))
	response.WriteJSON(w, http.StatusOK, entries)
}

// StartEntry handles POST /api/time-entries.
func (h *TimeTrackingHandler) StartEntry(w http.ResponseWriter, r *http.Request) {
	var input timetracking.StartEntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.WriteBadRequest(w, "invalid request body", err.Error())
		return
	}

	entry, err := h.service.StartEntry(r.Context(), &input)
	if err != nil {
		response.WriteInternalError(w, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusCreated, entry)
}

// StopEntry handles PUT /api/time-entries/{id}/stop.
func (h *TimeTrackingHandler) StopEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.StopEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTimeEntryNotFound):
			response.WriteNotFound(w, "Time entry not found")
		case errors.Is(err, timetracking.ErrAlreadyStopped):
			response.WriteBadRequest(w, "Time tracking already stopped")
		default:
			response.WriteInternalError(w, err.Error())
		}
		return
	}
	response.WriteJSON(w, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /api/time-entries/{id}.
func (h *TimeTrackingHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.WriteNotFound(w, "Time entry not found")
		return
	}
	response.WriteMessage(w, "Time entry deleted successfully")
}

// ActiveSession handles GET /api/pomodoro/active. The body is the active
// session, or null when none is running.
func (h *TimeTrackingHandler) ActiveSession(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, h.service.ActiveSession(r.Context()))
}

// StartSession handles POST /api/pomodoro/start.
func (h *TimeTrackingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var input timetracking.StartSessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.WriteBadRequest(w, "invalid request body", err.Error())
		return
	}

	session, err := h.service.StartSession(r.Context(), &input)
	if err != nil {
		response.WriteInternalError(w, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusCreated, session)
}

// CompletePhase handles PUT /api/pomodoro/{id}/complete.
func (h *TimeTrackingHandler) CompletePhase(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.CompletePhase(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrSessionNotFound):
			response.WriteNotFound(w, "Pomodoro session not found")
		case errors.Is(err, timetracking.ErrSessionInactive):
			response.WriteBadRequest(w, "Session is not active")
		default:
			response.WriteInternalError(w, err.Error())
		}
		return
	}
	response.WriteJSON(w, http.StatusOK, session)
}

// StopSession handles PUT /api/pomodoro/{id}/stop.
func (h *TimeTrackingHandler) StopSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.StopSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			response.WriteNotFound(w, "Pomodoro session not found")
			return
		}
		response.WriteInternalError(w, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusOK, session)
}
