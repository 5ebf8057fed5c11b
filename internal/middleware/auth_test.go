package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/veyselka/AI-LIB/internal/auth"
	"github.com/veyselka/AI-LIB/internal/utils"
)

var secret = []byte("test-secret")

func authedHandler(t *testing.T, gotOwner *string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotOwner = OwnerID(r)
		w.WriteHeader(http.StatusOK)
	})
	return Auth(secret, utils.NewLogger("error"))(next)
}

func TestAuthValidToken(t *testing.T) {
	token, err := auth.Sign(auth.Claims{Sub: "user-1"}, secret)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	var gotOwner string
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	authedHandler(t, &gotOwner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotOwner != "user-1" {
		t.Errorf("OwnerID = %q, want user-1", gotOwner)
	}
}

func TestAuthMissingHeader(t *testing.T) {
	var gotOwner string
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	rec := httptest.NewRecorder()

	authedHandler(t, &gotOwner).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if gotOwner != "" {
		t.Error("handler ran without identity")
	}
}

func TestAuthBadToken(t *testing.T) {
	var gotOwner string
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	authedHandler(t, &gotOwner).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthWrongScheme(t *testing.T) {
	var gotOwner string
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	authedHandler(t, &gotOwner).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestOwnerIDWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := OwnerID(req); got != "" {
		t.Errorf("OwnerID = %q, want empty for unauthenticated request", got)
	}
}
