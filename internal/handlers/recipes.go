package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/flavorly-backend/internal/services"
)

// RecipeCatalog is the upstream gateway as the endpoints see it.
type RecipeCatalog interface {
	FeaturedCategories(ctx context.Context) ([]services.Category, error)
	MealsByCategory(ctx context.Context, category string) ([]services.MealSummary, error)
	MealByID(ctx context.Context, id string) (json.RawMessage, error)
}

type RecipeHandler struct {
	catalog RecipeCatalog
}

func NewRecipeHandler(catalog RecipeCatalog) *RecipeHandler {
	return &RecipeHandler{catalog: catalog}
}

// Categories handles GET /api/recipes/categories.
func (h *RecipeHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.FeaturedCategories(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// ByCategory handles GET /api/recipes/by-category?c=Name.
func (h *RecipeHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("c")
	if category == "" {
		writeMessage(w, http.StatusBadRequest, "Missing category (?c=)")
		return
	}

	meals, err := h.catalog.MealsByCategory(r.Context(), category)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

// GetByID handles GET /api/recipes/{id}. A miss upstream is a 200 null, not
// a 404; the catalog id space is not ours to judge.
func (h *RecipeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	meal, err := h.catalog.MealByID(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	if meal == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(meal)
}

func writeUpstreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrUpstream) {
		writeMessage(w, http.StatusBadGateway, "Recipe catalog unavailable")
		return
	}
	writeMessage(w, http.StatusInternalServerError, "Failed to reach recipe catalog")
}
