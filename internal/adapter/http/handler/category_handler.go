package handler

import (
	"context"
	"net/http"

	"github.com/iho/gcashledger/internal/adapter/http/dto"
	"github.com/iho/gcashledger/internal/domain"
)

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	CreateCategory(ctx context.Context, ownerID, name string) (*domain.Category, error)
	ListCategories(ctx context.Context, ownerID string) ([]*domain.Category, error)
}

// CategoryHandler handles category requests.
type CategoryHandler struct {
	categoryUC CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// Create adds a category for the owner.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.categoryUC.CreateCategory(r.Context(), ownerID(r), req.Name)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.CategoriesFromDomain([]*domain.Category{category})[0])
}

// List returns the owner's categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryUC.ListCategories(r.Context(), ownerID(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}
