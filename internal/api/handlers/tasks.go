// Package handlers implements the HTTP handlers for every endpoint group:
// tasks, categories, templates, time tracking, pomodoro, analytics, data
// management, health and the websocket event feed.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"zerim-todo/internal/api/response"
	"zerim-todo/internal/events"
	"zerim-todo/internal/logging"
	"zerim-todo/internal/store"
	"zerim-todo/internal/tasks"
	"zerim-todo/pkg/types"
)

// TaskHandler serves the /api/tasks endpoint group.
type TaskHandler struct {
	service *tasks.Service
	hub     *events.Hub
	logger  logging.Logger
}

// NewTaskHandler creates a task handler. The hub may be nil in tests.
func NewTaskHandler(service *tasks.Service, hub *events.Hub, logger logging.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		hub:     hub,
		logger:  logger.WithComponent("tasks"),
	}
}

func (h *TaskHandler) publish(action string, task *types.Task) {
	if h.hub != nil {
		h.hub.Broadcast(events.NewTaskEvent(action, task.ID, task))
	}
}

// List handles GET /api/tasks with filtering and pagination query parameters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := parseTaskFilters(r)
	if err != nil {
		response.WriteValidationError(w, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, h.service.ListTasks(r.Context(), filters))
}

// parseTaskFilters reads filter query parameters, rejecting unknown enum
// values and malformed numbers.
func parseTaskFilters(r *http.Request) (*tasks.TaskFilters, error) {
	q := r.URL.Query()
	filters := &tasks.TaskFilters{
		CategoryID: q.Get("category_id"),
		Search:     q.Get("search"),
	}

	if v := q.Get("status"); v != "" {
		status := types.TaskStatus(v)
		if !status.Valid() {
			return nil, errors.New("invalid status: " + v)
		}
		filters.Status = &status
	}
	if v := q.Get("priority"); v != "" {
		priority := types.Priority(v)
		if !priority.Valid() {
			return nil, errors.New("invalid priority: " + v)
		}
		filters.Priority = &priority
	}
	if v := q.Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid completed flag: " + v)
		}
		filters.Completed = &completed
	}
	if v := q.Get("overdue"); v != "" {
		overdue, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid overdue flag: " + v)
		}
		filters.Overdue = overdue
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return nil, errors.New("limit must be a positive integer")
		}
		filters.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return nil, errors.New("offset must be a non-negative integer")
		}
		filters.Offset = offset
	}

	return filters, nil
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input tasks.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.WriteBadRequest(w, "invalid request body", err.Error())
		return
	}

	task, err := h.service.CreateTask(r.Context(), &input)
	if err != nil {
		response.WriteValidationError(w, err.Error())
		return
	}

	h.publish(events.ActionCreated, task)
	response.WriteJSON(w, http.StatusCreated, task)
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteNotFound(w, "Task not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, task)
}

// Update handles PUT /api/tasks/{id} with a partial patch body.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch types.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.WriteBadRequest(w, "invalid request body", err.Error())
		return
	}

	task, err := h.service.UpdateTask(r.Context(), chi.URLParam(r, "id"), &patch)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			response.WriteNotFound(w, "Task not found")
			return
		}
		response.WriteValidationError(w, err.Error())
		return
	}

	h.publish(events.ActionUpdated, task)
	response.WriteJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		response.WriteNotFound(w, "Task not found")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(events.NewTaskEvent(events.ActionDeleted, id, nil))
	}
	response.WriteMessage(w, "Task deleted successfully")
}

// AddSubtask handles POST /api/tasks/{id}/subtasks.
func (h *TaskHandler) AddSubtask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SubtaskTitle string `json:"subtask_title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.WriteBadRequest(w, "invalid request body", err.Error())
		return
	}

	task, err := h.service.AddSubtask(r.Context(), chi.URLParam(r, "id"), body.SubtaskTitle)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			response.WriteNotFound(w, "Task not found")
			return
		}
		response.WriteValidationError(w, err.Error())
		return
	}

	h.publish(events.ActionUpdated, task)
	response.WriteJSON(w, http.StatusOK, task)
}

// UpdateSubtask handles PUT /api/tasks/{id}/subtasks/{subtaskID}.
func (h *TaskHandler) UpdateSubtask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.WriteBadRequest(w, "invalid request body", err.Error())
		return
	}

	task, err := h.service.UpdateSubtask(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "subtaskID"), body.Completed)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			response.WriteNotFound(w, "Task not found")
			return
		}
		response.WriteNotFound(w, "Subtask not found")
		return
	}

	h.publish(events.ActionUpdated, task)
	response.WriteJSON(w, http.StatusOK, task)
}

// DeleteSubtask handles DELETE /api/tasks/{id}/subtasks/{subtaskID}.
func (h *TaskHandler) DeleteSubtask(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.DeleteSubtask(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "subtaskID"))
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			response.WriteNotFound(w, "Task not found")
			return
		}
		response.WriteInternalError(w, err.Error())
		return
	}

	h.publish(events.ActionUpdated, task)
	response.WriteJSON(w, http.StatusOK, task)
}

// BulkUpdate handles PUT /api/tasks/bulk: the same patch applied to every
// listed task. Unknown IDs are skipped.
func (h *TaskHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TaskIDs []string        `json:"task_ids"`
		Updates types.TaskPatch `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.WriteBadRequest(w, "invalid request body", err.Error())
		return
	}

	updated, err := h.service.BulkUpdate(r.Context(), body.TaskIDs, &body.Updates)
	if err != nil {
		response.WriteValidationError(w, err.Error())
		return
	}

	for i := range updated {
		h.publish(events.ActionUpdated, &updated[i])
	}
	response.WriteJSON(w, http.StatusOK, updated)
}

// BulkDelete handles DELETE /api/tasks/bulk. The body is a bare JSON array of
// task IDs.
func (h *TaskHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var taskIDs []string
	if err := json.NewDecoder(r.Body).Decode(&taskIDs); err != nil {
		response.WriteBadRequest(w, "invalid request body", err.Error())
		return
	}

	deleted := h.service.BulkDelete(r.Context(), taskIDs)
	response.WriteMessage(w, "Deleted "+strconv.Itoa(deleted)+" tasks")
}

// ClearCompleted handles POST /api/tasks/clear-completed.
func (h *TaskHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	cleared := h.service.ClearCompleted(r.Context())
	response.WriteMessage(w, "Cleared "+strconv.Itoa(cleared)+" completed tasks")
}
