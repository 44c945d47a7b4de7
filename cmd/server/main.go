package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/AnshRaj112/flavorly-backend/internal/config"
	"github.com/AnshRaj112/flavorly-backend/internal/database"
	"github.com/AnshRaj112/flavorly-backend/internal/handlers"
	"github.com/AnshRaj112/flavorly-backend/internal/middleware"
	"github.com/AnshRaj112/flavorly-backend/internal/routes"
	"github.com/AnshRaj112/flavorly-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	if cfg.JWTSecret == "your-secret-key-change-in-production" {
		log.Println("⚠️  WARNING: JWT_SECRET not set; sessions are signed with the development default")
		log.Println("   To generate a secret, run: openssl rand -base64 32")
	}

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	client, db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect(client)

	users := services.NewUserService(db)
	favorites := services.NewFavoriteService(db)
	catalog := services.NewMealDBClient(cfg.MealDBBaseURL)

	// Unique indexes back the email and (user, meal) invariants; without
	// them duplicates would slip through under concurrency, so failing to
	// create them is fatal.
	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := users.EnsureIndexes(indexCtx); err != nil {
		log.Fatal("Failed to ensure user indexes:", err)
	}
	if err := favorites.EnsureIndexes(indexCtx); err != nil {
		log.Fatal("Failed to ensure favorite indexes:", err)
	}
	log.Println("✅ MongoDB indexes ensured")

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"message":"Recipe API running"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, cfg,
		handlers.NewAuthHandler(cfg, users),
		handlers.NewFavoriteHandler(favorites),
		handlers.NewRecipeHandler(catalog),
	)

	log.Println("📋 Registered routes:")
	log.Println("  POST   /api/auth/register")
	log.Println("  POST   /api/auth/login")
	log.Println("  GET    /api/auth/me")
	log.Println("  POST   /api/auth/logout")
	log.Println("  GET    /api/favorites")
	log.Println("  POST   /api/favorites")
	log.Println("  DELETE /api/favorites/{mealId}")
	log.Println("  GET    /api/recipes/categories")
	log.Println("  GET    /api/recipes/by-category")
	log.Println("  GET    /api/recipes/{id}")

	log.Printf("🚀 Flavorly backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
