package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/flavorly-backend/internal/services"
)

type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth rejects requests without a valid session cookie and stores the
// authenticated user id in the request context for the handler.
func RequireAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := sessionUserID(r, jwtSecret)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Not authenticated"})
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth stores the user id when a valid session cookie is present and
// lets the request through either way. Used by /api/auth/me, which answers
// with a null user for anonymous clients instead of a 401.
func OptionalAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := sessionUserID(r, jwtSecret); ok {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionUserID(r *http.Request, jwtSecret string) (primitive.ObjectID, bool) {
	cookie, err := r.Cookie(services.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return primitive.NilObjectID, false
	}
	userID, err := services.ValidateSessionToken(jwtSecret, cookie.Value)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return userID, true
}

// UserIDFromContext returns the authenticated user id stored by RequireAuth
// or OptionalAuth.
func UserIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	userID, ok := ctx.Value(userIDKey).(primitive.ObjectID)
	return userID, ok
}
