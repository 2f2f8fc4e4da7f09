package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gcashledger/internal/domain"
)

type ownerLookupFunc func(ctx context.Context, id string) (*domain.Owner, error)

func (f ownerLookupFunc) GetOwner(ctx context.Context, id string) (*domain.Owner, error) {
	return f(ctx, id)
}

func TestRequireOnboarded(t *testing.T) {
	owners := ownerLookupFunc(func(ctx context.Context, id string) (*domain.Owner, error) {
		switch id {
		case "ready":
			return &domain.Owner{ID: id, Onboarded: true}, nil
		case "fresh":
			return &domain.Owner{ID: id}, nil
		case "broken":
			return nil, errors.New("db down")
		}
		return nil, domain.ErrOwnerNotFound
	})

	r := chi.NewRouter()
	r.With(RequireOnboarded(owners)).Get("/owners/{ownerID}/balances", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		owner      string
		wantStatus int
	}{
		{"ready", http.StatusOK},
		{"fresh", http.StatusConflict},
		{"ghost", http.StatusNotFound},
		{"broken", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.owner, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/owners/"+tt.owner+"/balances", nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}
