package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/veyselka/AI-LIB/internal/auth"
	"github.com/veyselka/AI-LIB/internal/utils"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// Auth verifies the bearer token and stores the identity claims in the
// request context. Requests without a valid token never reach the
// handler.
func Auth(secret []byte, logger *utils.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
			claims, err := auth.Verify(token, secret)
			if err != nil {
				logger.Warn("rejected bearer token", "error", err)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerID returns the authenticated owner identifier, or "" when the
// request carried no verified identity.
func OwnerID(r *http.Request) string {
	claims, ok := r.Context().Value(claimsKey).(auth.Claims)
	if !ok {
		return ""
	}
	return claims.Sub
}

// ClaimsFrom returns the full verified claims from the request context.
func ClaimsFrom(r *http.Request) (auth.Claims, bool) {
	claims, ok := r.Context().Value(claimsKey).(auth.Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"code":    utils.CodeAuthentication,
		"message": "missing or invalid token",
	})
}
