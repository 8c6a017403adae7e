package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
)

// CreateCategoryRequest is the request body for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory returns the category with the requested name, creating it
// on first reference. The operation is idempotent per name.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), req.Name)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, category)
}

// ListCategories lists all categories ordered by name
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListAlphabeticalCategories(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, categories)
}
