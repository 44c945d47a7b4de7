package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/flavorly-backend/internal/config"
	"github.com/AnshRaj112/flavorly-backend/internal/handlers"
	"github.com/AnshRaj112/flavorly-backend/internal/middleware"
)

// SetupRoutes wires the API surface. Everything under /api/favorites sits
// behind RequireAuth; /api/auth/me uses OptionalAuth so anonymous clients
// get a null user instead of a 401.
func SetupRoutes(r *chi.Mux, cfg *config.Config, auth *handlers.AuthHandler, favorites *handlers.FavoriteHandler, recipes *handlers.RecipeHandler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
		r.With(middleware.OptionalAuth(cfg.JWTSecret)).Get("/me", auth.Me)
		r.Post("/logout", auth.Logout)
	})

	r.Route("/api/favorites", func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.JWTSecret))
		r.Get("/", favorites.List)
		r.Post("/", favorites.Add)
		// {mealId} is the external catalog id, not the favorite's _id
		r.Delete("/{mealId}", favorites.Remove)
	})

	r.Route("/api/recipes", func(r chi.Router) {
		r.Get("/categories", recipes.Categories)
		r.Get("/by-category", recipes.ByCategory)
		r.Get("/{id}", recipes.GetByID)
	})
}
