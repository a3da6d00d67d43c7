// Package middleware provides HTTP middleware for the dashboard access gate.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const (
	// sessionIDKey is the context key for storing the authenticated session ID.
	sessionIDKey ContextKey = "sessionID"
	// tokenKey is the context key for the raw bearer token.
	tokenKey ContextKey = "token"
)

// TokenValidator is an interface for validating session tokens.
// This allows the middleware to work with any gate implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (SessionGetter, error)
}

// SessionGetter is an interface for extracting the session ID from token claims.
type SessionGetter interface {
	GetSessionID() uuid.UUID
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// AuthMiddleware creates middleware that validates session tokens and adds the session ID
// to the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := BearerToken(r)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, claims.GetSessionID())
			ctx = context.WithValue(ctx, tokenKey, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionID extracts the authenticated session ID from the request context.
func GetSessionID(r *http.Request) (uuid.UUID, error) {
	sessionID, ok := r.Context().Value(sessionIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("session ID not found in request context")
	}
	return sessionID, nil
}

// GetToken returns the bearer token accepted by AuthMiddleware.
func GetToken(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenKey).(string)
	return token, ok
}

// SessionIDKey returns the context key for the session ID (for testing purposes).
func SessionIDKey() ContextKey {
	return sessionIDKey
}
