package api

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/apiforge/apiforge/pkg/utils"
)

type contextKey string

const userClaimsKey contextKey = "userClaims"

// SessionAuthMiddleware verifies the platform session token and attaches
// its claims to the request context. Missing header is 401, a token that
// fails verification is 403, a verified token without an email claim is
// 401 — matching the generation endpoint's contract.
func SessionAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized: Missing token.")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		secret := os.Getenv("SECRET_KEY")

		claims, err := utils.ValidateJWT(token, secret)
		if err != nil {
			respondError(w, http.StatusForbidden, "Invalid or expired token.")
			return
		}
		if claims.Email == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized: No user found.")
			return
		}

		ctx := context.WithValue(r.Context(), userClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserClaims returns the session claims attached by
// SessionAuthMiddleware, or nil outside of it.
func GetUserClaims(r *http.Request) *utils.Claims {
	claims, ok := r.Context().Value(userClaimsKey).(*utils.Claims)
	if !ok {
		return nil
	}
	return claims
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
