package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"zerim-todo/internal/api/response"
	"zerim-todo/internal/logging"
	"zerim-todo/internal/store"
	"zerim-todo/pkg/types"
)

// CategoryHandler serves the /api/categories endpoint group directly over the
// store; categories have no business rules beyond reference cleanup, which the
// store owns.
type CategoryHandler struct {
	store  *store.MemoryStore
	logger logging.Logger
}

// NewCategoryHandler creates a category handler.
func NewCategoryHandler(s *store.MemoryStore, logger logging.Logger) *CategoryHandler {
	return &CategoryHandler{store: s, logger: logger.WithComponent("categories")}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, h.store.ListCategories(r.Context()))
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var category types.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		response.WriteBadRequest(w, "invalid request body", err.Error())
		return
	}
	if category.Name == "" {
		response.WriteValidationError(w, "category name is required")
		return
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	if err := h.store.CreateCategory(r.Context(), &category); err != nil {
		response.WriteInternalError(w, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusCreated, category)
}

// Update handles PUT /api/categories/{id}. Fields present in the body replace
// the stored values; the path ID wins over any ID in the body.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	current, err := h.store.GetCategory(r.Context(), id)
	if err != nil {
		response.WriteNotFound(w, "Category not found")
		return
	}

	var body struct {
		Name        *string `json:"name"`
		Color       *string `json:"color"`
		Icon        *string `json:"icon"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.WriteBadRequest(w, "invalid request body", err.Error())
		return
	}

	if body.Name != nil {
		current.Name = *body.Name
	}
	if body.Color != nil {
		current.Color = *body.Color
	}
	if body.Icon != nil {
		current.Icon = body.Icon
	}
	if body.Description != nil {
		current.Description = body.Description
	}

	if err := h.store.UpdateCategory(r.Context(), current); err != nil {
		response.WriteNotFound(w, "Category not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, current)
}

// Delete handles DELETE /api/categories/{id}. Referencing tasks lose their
// category assignment but are kept.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.WriteNotFound(w, "Category not found")
		return
	}
	response.WriteMessage(w, "Category deleted successfully")
}
