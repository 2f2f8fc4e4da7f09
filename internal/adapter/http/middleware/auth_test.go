package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/auth"
)

func TestAuthMiddleware_OwnerMustMatchSubject(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwtManager.Generate(&domain.Owner{ID: "owner-1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	r := chi.NewRouter()
	r.With(AuthMiddleware(jwtManager), RequireOwner).Get("/owners/{ownerID}", func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaimsFromContext(r.Context())
		if !ok || claims.Email != "a@example.com" {
			t.Errorf("claims missing from context")
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
	}{
		{"own resource", "/owners/owner-1", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "/owners/owner-1", "bearer " + token, http.StatusOK},
		{"other owner", "/owners/owner-2", "Bearer " + token, http.StatusForbidden},
		{"missing header", "/owners/owner-1", "", http.StatusUnauthorized},
		{"wrong scheme", "/owners/owner-1", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "/owners/owner-1", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRequireOwner_WithoutClaims(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireOwner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without claims")
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background()))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
