package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/flavorly-backend/internal/config"
	"github.com/AnshRaj112/flavorly-backend/internal/handlers"
	"github.com/AnshRaj112/flavorly-backend/internal/models"
	"github.com/AnshRaj112/flavorly-backend/internal/routes"
	"github.com/AnshRaj112/flavorly-backend/internal/services"
)

// fakeUserStore keeps users in memory. Passwords are stored with a marker
// prefix instead of a real hash so tests stay fast.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (s *fakeUserStore) Register(_ context.Context, name, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return nil, services.ErrEmailTaken
	}
	now := time.Now()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
		Email:     email,
		Password:  "hashed:" + password,
	}
	s.users[email] = user
	return user, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, services.ErrUserNotFound
}

func (s *fakeUserStore) VerifyPassword(user *models.User, password string) bool {
	return user.Password == "hashed:"+password
}

// fakeFavoriteStore enforces the (user, meal) uniqueness atomically under a
// mutex, standing in for the collection's unique index.
type fakeFavoriteStore struct {
	mu        sync.Mutex
	favorites []models.Favorite
	clock     time.Time
}

func newFakeFavoriteStore() *fakeFavoriteStore {
	return &fakeFavoriteStore{clock: time.Now()}
}

func (s *fakeFavoriteStore) List(_ context.Context, userID primitive.ObjectID) ([]models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Favorite{}
	for _, f := range s.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeFavoriteStore) Add(_ context.Context, userID primitive.ObjectID, mealID, name, thumb string) (*models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.favorites {
		if f.UserID == userID && f.MealID == mealID {
			return nil, services.ErrAlreadyFavorited
		}
	}
	s.clock = s.clock.Add(time.Second)
	favorite := models.Favorite{
		ID:        primitive.NewObjectID(),
		CreatedAt: s.clock,
		UpdatedAt: s.clock,
		UserID:    userID,
		MealID:    mealID,
		Name:      name,
		Thumb:     thumb,
	}
	s.favorites = append(s.favorites, favorite)
	return &favorite, nil
}

func (s *fakeFavoriteStore) Remove(_ context.Context, userID primitive.ObjectID, mealID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.favorites {
		if f.UserID == userID && f.MealID == mealID {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			return nil
		}
	}
	return services.ErrFavoriteNotFound
}

// fakeCatalog serves canned upstream data, or a forced error.
type fakeCatalog struct {
	categories []services.Category
	meals      map[string][]services.MealSummary
	details    map[string]json.RawMessage
	err        error
}

func (c *fakeCatalog) FeaturedCategories(context.Context) ([]services.Category, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.categories, nil
}

func (c *fakeCatalog) MealsByCategory(_ context.Context, category string) ([]services.MealSummary, error) {
	if c.err != nil {
		return nil, c.err
	}
	meals, ok := c.meals[category]
	if !ok {
		return []services.MealSummary{}, nil
	}
	return meals, nil
}

func (c *fakeCatalog) MealByID(_ context.Context, id string) (json.RawMessage, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.details[id], nil
}

type testApp struct {
	router    *chi.Mux
	cfg       *config.Config
	users     *fakeUserStore
	favorites *fakeFavoriteStore
	catalog   *fakeCatalog
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithEnv(t, "development")
}

func newTestAppWithEnv(t *testing.T, env string) *testApp {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:      "handler-test-secret",
		Environment:    env,
		AllowedOrigins: []string{"http://localhost:5173"},
	}
	app := &testApp{
		cfg:       cfg,
		users:     newFakeUserStore(),
		favorites: newFakeFavoriteStore(),
		catalog:   &fakeCatalog{meals: map[string][]services.MealSummary{}, details: map[string]json.RawMessage{}},
	}

	app.router = chi.NewRouter()
	routes.SetupRoutes(app.router, cfg,
		handlers.NewAuthHandler(cfg, app.users),
		handlers.NewFavoriteHandler(app.favorites),
		handlers.NewRecipeHandler(app.catalog),
	)
	return app
}

// do runs one request through the router. body is JSON-encoded when non-nil;
// cookies ride along as-is.
func (a *testApp) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// registerUser registers a user and returns the session cookie.
func (a *testApp) registerUser(t *testing.T, name, email, password string) *http.Cookie {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

// sessionCookie pulls the session cookie out of a response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == services.SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %q cookie in response", services.SessionCookieName)
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
