package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FeaturedCategoryCount caps the category list served to clients. Showing
// only the first five upstream categories is a product decision carried over
// from the original dashboard, not a pagination mechanism.
const FeaturedCategoryCount = 5

const upstreamTimeout = 10 * time.Second

// ErrUpstream is returned for any catalog failure: network, non-200 status
// or an unparseable body. The gateway does not retry.
var ErrUpstream = errors.New("recipe catalog unavailable")

// Category is the reshaped categories.php entry.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Thumb       string `json:"thumb"`
	Description string `json:"description"`
}

// MealSummary is the filter.php entry, passed through with TheMealDB's own
// field names so the frontend can treat both sources alike.
type MealSummary struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Thumb string `json:"strMealThumb"`
}

// MealDBClient is a stateless read-only client for TheMealDB. No caching,
// no retries, no local persistence.
type MealDBClient struct {
	baseURL string
	client  *http.Client
}

func NewMealDBClient(baseURL string) *MealDBClient {
	return &MealDBClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: upstreamTimeout},
	}
}

// FeaturedCategories fetches the full upstream category list and truncates
// it to FeaturedCategoryCount entries.
func (c *MealDBClient) FeaturedCategories(ctx context.Context) ([]Category, error) {
	var payload struct {
		Categories []struct {
			ID          string `json:"idCategory"`
			Name        string `json:"strCategory"`
			Thumb       string `json:"strCategoryThumb"`
			Description string `json:"strCategoryDescription"`
		} `json:"categories"`
	}
	if err := c.getJSON(ctx, "/categories.php", &payload); err != nil {
		return nil, err
	}

	list := payload.Categories
	if len(list) > FeaturedCategoryCount {
		list = list[:FeaturedCategoryCount]
	}

	categories := make([]Category, 0, len(list))
	for _, entry := range list {
		categories = append(categories, Category{
			ID:          entry.ID,
			Name:        entry.Name,
			Thumb:       entry.Thumb,
			Description: entry.Description,
		})
	}
	return categories, nil
}

// MealsByCategory lists meal summaries for a category. An unknown category
// is an empty list upstream ("meals": null), not an error.
func (c *MealDBClient) MealsByCategory(ctx context.Context, category string) ([]MealSummary, error) {
	var payload struct {
		Meals []MealSummary `json:"meals"`
	}
	if err := c.getJSON(ctx, "/filter.php?c="+url.QueryEscape(category), &payload); err != nil {
		return nil, err
	}
	if payload.Meals == nil {
		return []MealSummary{}, nil
	}
	return payload.Meals, nil
}

// MealByID fetches the full detail document for one meal. Returns nil with
// no error when the catalog has no match. The detail keeps TheMealDB's raw
// shape (instructions, the strIngredient1..20 columns, etc.), so it is
// passed through unparsed.
func (c *MealDBClient) MealByID(ctx context.Context, id string) (json.RawMessage, error) {
	var payload struct {
		Meals []json.RawMessage `json:"meals"`
	}
	if err := c.getJSON(ctx, "/lookup.php?i="+url.QueryEscape(id), &payload); err != nil {
		return nil, err
	}
	if len(payload.Meals) == 0 {
		return nil, nil
	}
	return payload.Meals[0], nil
}

func (c *MealDBClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("mealdb: request %s failed: %v", path, err)
		return ErrUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("mealdb: unexpected status %d for %s", resp.StatusCode, path)
		return ErrUpstream
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Printf("mealdb: decoding %s response failed: %v", path, err)
		return ErrUpstream
	}
	return nil
}
