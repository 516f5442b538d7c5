// Package middleware provides HTTP middleware for staff authentication.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const staffIDKey ContextKey = "staffID"

// TokenValidator validates bearer tokens. It lets the middleware work with
// any token service without importing it.
type TokenValidator interface {
	ValidateToken(tokenString string) (StaffIDGetter, error)
}

// StaffIDGetter extracts the staff account ID from token claims.
type StaffIDGetter interface {
	GetStaffID() uuid.UUID
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// staff ID of valid ones in the request context.
func AuthMiddleware(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			claims, err := tokens.ValidateToken(tokenString)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), staffIDKey, claims.GetStaffID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken accepts "Bearer <token>" with a case-insensitive scheme.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="hr"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "Unauthorized",
		"code":    "UNAUTHORIZED",
	})
}

// GetStaffID extracts the authenticated staff ID from the request context.
func GetStaffID(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(staffIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("staff ID not found in request context")
	}
	return id, nil
}

// WithStaffID returns a context carrying id, for handlers exercised without
// the middleware.
func WithStaffID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, staffIDKey, id)
}
