package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/flavorly-backend/internal/middleware"
	"github.com/AnshRaj112/flavorly-backend/internal/models"
	"github.com/AnshRaj112/flavorly-backend/internal/services"
)

// FavoriteStore is the slice of the favorite store the endpoints need.
type FavoriteStore interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]models.Favorite, error)
	Add(ctx context.Context, userID primitive.ObjectID, mealID, name, thumb string) (*models.Favorite, error)
	Remove(ctx context.Context, userID primitive.ObjectID, mealID string) error
}

type AddFavoriteRequest struct {
	MealID string `json:"mealId"`
	Name   string `json:"name"`
	Thumb  string `json:"thumb,omitempty"`
}

type FavoriteHandler struct {
	favorites FavoriteStore
}

func NewFavoriteHandler(favorites FavoriteStore) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// List handles GET /api/favorites, newest first.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	favorites, err := h.favorites.List(r.Context(), userID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to load favorites")
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

// Add handles POST /api/favorites. A duplicate is a 409, kept distinct from
// validation and server failures so the frontend can say "already saved".
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req AddFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	errs := map[string]string{}
	if strings.TrimSpace(req.MealID) == "" {
		errs["mealId"] = "Meal id is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "Name is required"
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	favorite, err := h.favorites.Add(r.Context(), userID, strings.TrimSpace(req.MealID), strings.TrimSpace(req.Name), strings.TrimSpace(req.Thumb))
	if errors.Is(err, services.ErrAlreadyFavorited) {
		writeMessage(w, http.StatusConflict, "Already in favorites")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to save favorite")
		return
	}
	writeJSON(w, http.StatusCreated, favorite)
}

// Remove handles DELETE /api/favorites/{mealId}. The path segment is the
// external catalog id the client already holds, never the favorite
// document's own _id.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	mealID := chi.URLParam(r, "mealId")
	err := h.favorites.Remove(r.Context(), userID, mealID)
	if errors.Is(err, services.ErrFavoriteNotFound) {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to remove favorite")
		return
	}
	writeMessage(w, http.StatusOK, "Removed")
}
