package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/gcashledger/internal/adapter/http/dto"
	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
)

// OwnerService defines the behavior needed by OwnerHandler.
type OwnerService interface {
	Signup(ctx context.Context, input usecase.SignupInput) (*domain.Owner, error)
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.Owner, error)
	GetOwner(ctx context.Context, id string) (*domain.Owner, error)
	CompleteOnboarding(ctx context.Context, input usecase.CompleteOnboardingInput) (*domain.Owner, error)
}

// TokenIssuer issues access tokens for authenticated owners.
type TokenIssuer interface {
	Generate(owner *domain.Owner) (string, time.Time, error)
}

// OwnerHandler handles signup, login, profile and onboarding requests.
type OwnerHandler struct {
	ownerUC OwnerService
	tokens  TokenIssuer
}

// NewOwnerHandler creates a new OwnerHandler. With a nil issuer no tokens
// are returned.
func NewOwnerHandler(ownerUC OwnerService, tokens TokenIssuer) *OwnerHandler {
	return &OwnerHandler{ownerUC: ownerUC, tokens: tokens}
}

// Signup registers a new owner.
func (h *OwnerHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	owner, err := h.ownerUC.Signup(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	h.writeAuthResponse(w, r, http.StatusCreated, owner)
}

// Login authenticates an owner by email and password.
func (h *OwnerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	owner, err := h.ownerUC.Authenticate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	h.writeAuthResponse(w, r, http.StatusOK, owner)
}

func (h *OwnerHandler) writeAuthResponse(w http.ResponseWriter, r *http.Request, status int, owner *domain.Owner) {
	resp := dto.AuthResponse{Owner: dto.OwnerFromDomain(owner)}
	if h.tokens != nil {
		token, expiresAt, err := h.tokens.Generate(owner)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		resp.Token = token
		resp.ExpiresAt = &expiresAt
	}
	writeJSON(w, status, resp)
}

// Get returns the owner's profile.
func (h *OwnerHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, err := h.ownerUC.GetOwner(r.Context(), ownerID(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OwnerFromDomain(owner))
}

// CompleteOnboarding sets the owner's initial balances once.
func (h *OwnerHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var req dto.OnboardingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(ownerID(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	owner, err := h.ownerUC.CompleteOnboarding(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OwnerFromDomain(owner))
}
