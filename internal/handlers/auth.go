package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/flavorly-backend/internal/config"
	"github.com/AnshRaj112/flavorly-backend/internal/middleware"
	"github.com/AnshRaj112/flavorly-backend/internal/models"
	"github.com/AnshRaj112/flavorly-backend/internal/services"
)

const minPasswordLength = 6

// UserStore is the slice of the credential store the auth endpoints need.
type UserStore interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPayload is the client-facing user shape. The password hash never
// appears here.
type UserPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserResponse struct {
	User *UserPayload `json:"user"`
}

type AuthHandler struct {
	cfg   *config.Config
	users UserStore
}

func NewAuthHandler(cfg *config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: users}
}

// Register handles POST /api/auth/register. A successful registration logs
// the user straight in: the session cookie is set on the response.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	errs := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "Name is required"
	}
	if !validEmail(req.Email) {
		errs["email"] = "Valid email required"
	}
	if len(req.Password) < minPasswordLength {
		errs["password"] = "Min 6 chars"
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.users.Register(r.Context(), strings.TrimSpace(req.Name), strings.TrimSpace(req.Email), req.Password)
	if errors.Is(err, services.ErrEmailTaken) {
		writeMessage(w, http.StatusBadRequest, "Email already in use")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if !h.startSession(w, user.ID) {
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{User: userPayload(user)})
}

// Login handles POST /api/auth/login. Unknown email and wrong password give
// the same answer so the endpoint does not leak which emails exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	errs := map[string]string{}
	if !validEmail(req.Email) {
		errs["email"] = "Valid email required"
	}
	if len(req.Password) < minPasswordLength {
		errs["password"] = "Min 6 chars"
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.users.FindByEmail(r.Context(), strings.TrimSpace(req.Email))
	if errors.Is(err, services.ErrUserNotFound) {
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}
	if !h.users.VerifyPassword(user, req.Password) {
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	if !h.startSession(w, user.ID) {
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{User: userPayload(user)})
}

// Me handles GET /api/auth/me. Anonymous or stale sessions get a null user,
// not an error; the frontend treats both the same way.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, UserResponse{User: nil})
		return
	}

	user, err := h.users.FindByID(r.Context(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		writeJSON(w, http.StatusOK, UserResponse{User: nil})
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{User: userPayload(user)})
}

// Logout handles POST /api/auth/logout by clearing the session cookie. The
// clearing cookie mirrors the set-time attributes exactly; a mismatch would
// leave some clients holding the old cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	writeMessage(w, http.StatusOK, "Logged out")
}

func (h *AuthHandler) startSession(w http.ResponseWriter, userID primitive.ObjectID) bool {
	token, err := services.CreateSessionToken(h.cfg.JWTSecret, userID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to create session")
		return false
	}
	http.SetCookie(w, h.sessionCookie(token, int(services.SessionDuration.Seconds())))
	return true
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     services.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
}

func userPayload(user *models.User) *UserPayload {
	return &UserPayload{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
