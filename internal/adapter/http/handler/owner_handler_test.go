package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gcashledger/internal/adapter/http/dto"
	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
)

func TestOwnerHandler_Signup_ReturnsToken(t *testing.T) {
	expires := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	var captured usecase.SignupInput
	h := NewOwnerHandler(&ownerServiceStub{
		signupFn: func(ctx context.Context, input usecase.SignupInput) (*domain.Owner, error) {
			captured = input
			return &domain.Owner{ID: "owner-1", Email: input.Email, Name: input.Name}, nil
		},
	}, tokenIssuerStub{expiresAt: expires})

	rec := httptest.NewRecorder()
	h.Signup(rec, newRequest(http.MethodPost, "/api/v1/auth/signup",
		`{"name":"Agent","email":"agent@example.com","password":"Secret123!"}`, nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Email != "agent@example.com" || captured.Password != "Secret123!" {
		t.Fatalf("unexpected input %+v", captured)
	}

	var resp dto.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "token-owner-1" || resp.ExpiresAt == nil || !resp.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected auth response %+v", resp)
	}
	if resp.Owner.Onboarded {
		t.Fatal("new owner must not be onboarded")
	}
}

func TestOwnerHandler_Signup_Conflict(t *testing.T) {
	h := NewOwnerHandler(&ownerServiceStub{
		signupFn: func(ctx context.Context, input usecase.SignupInput) (*domain.Owner, error) {
			return nil, domain.ErrOwnerExists
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.Signup(rec, newRequest(http.MethodPost, "/api/v1/auth/signup", `{"email":"a@b.c"}`, nil))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestOwnerHandler_Login_WithoutIssuer(t *testing.T) {
	h := NewOwnerHandler(&ownerServiceStub{
		authFn: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.Owner, error) {
			if input.Password != "right" {
				return nil, domain.ErrUnauthorized
			}
			return &domain.Owner{ID: "owner-1"}, nil
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.Login(rec, newRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.c","password":"wrong"}`, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Login(rec, newRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.c","password":"right"}`, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp dto.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "" {
		t.Fatalf("expected no token without issuer, got %q", resp.Token)
	}
}

func TestOwnerHandler_CompleteOnboarding(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"success", `{"electronic_balance":"5000","cash_balance":"3000","default_fee_percentage":"1.5"}`, nil, http.StatusOK},
		{"already onboarded", `{"electronic_balance":"5000","cash_balance":"3000"}`, domain.ErrAlreadyOnboarded, http.StatusConflict},
		{"negative balance", `{"electronic_balance":"-1","cash_balance":"0"}`, domain.ErrInvalidAmount, http.StatusBadRequest},
		{"unparseable balance", `{"electronic_balance":"abc","cash_balance":"0"}`, nil, http.StatusBadRequest},
		{"malformed json", `{`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured usecase.CompleteOnboardingInput
			h := NewOwnerHandler(&ownerServiceStub{
				onboardingFn: func(ctx context.Context, input usecase.CompleteOnboardingInput) (*domain.Owner, error) {
					captured = input
					if tt.err != nil {
						return nil, tt.err
					}
					return &domain.Owner{
						ID:                   input.OwnerID,
						ElectronicBalance:    input.ElectronicBalance,
						CashBalance:          input.CashBalance,
						DefaultFeePercentage: input.DefaultFeePercentage,
						Onboarded:            true,
					}, nil
				},
			}, nil)

			rec := httptest.NewRecorder()
			h.CompleteOnboarding(rec, newRequest(http.MethodPost, "/api/v1/owners/owner-1/onboarding", tt.body,
				map[string]string{OwnerIDParam: "owner-1"}))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				if captured.OwnerID != "owner-1" || !captured.DefaultFeePercentage.Equal(decimal.RequireFromString("1.5")) {
					t.Fatalf("unexpected input %+v", captured)
				}
				var resp dto.OwnerResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if !resp.Onboarded || resp.ElectronicBalance != "5000.00" {
					t.Fatalf("unexpected owner %+v", resp)
				}
			}
		})
	}
}

func TestOwnerHandler_Get_NotFound(t *testing.T) {
	h := NewOwnerHandler(&ownerServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Owner, error) {
			return nil, domain.ErrOwnerNotFound
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.Get(rec, newRequest(http.MethodGet, "/api/v1/owners/ghost", "", map[string]string{OwnerIDParam: "ghost"}))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "owner_not_found" {
		t.Fatalf("unexpected error code %q", resp.Error)
	}
}
