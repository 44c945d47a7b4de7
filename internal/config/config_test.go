package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnshRaj112/flavorly-backend/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "https://www.themealdb.com/api/json/v1/1", cfg.MealDBBaseURL)
	assert.NotEmpty(t, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://flavorly.app, https://www.flavorly.app")

	cfg := config.Load()
	assert.Equal(t, []string{"https://flavorly.app", "https://www.flavorly.app"}, cfg.AllowedOrigins)
}

func TestLoadFallsBackToFrontendURL(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FRONTEND_URL", "https://flavorly.app")

	cfg := config.Load()
	assert.Equal(t, []string{"https://flavorly.app"}, cfg.AllowedOrigins)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENV", "Production")

	cfg := config.Load()
	assert.True(t, cfg.IsProduction())
}
