package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/iho/gcashledger/internal/adapter/http/dto"
	"github.com/iho/gcashledger/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/transactions?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/transactions?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestParseRangeQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?from=2024-01-01&to=2024-01-31", nil)
	from, to, err := parseRangeQuery(req)
	if err != nil || from == nil || to == nil || to.Day() != 31 {
		t.Fatalf("unexpected range %v %v %v", from, to, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	if from, to, err := parseRangeQuery(req); err != nil || from != nil || to != nil {
		t.Fatalf("expected open range, got %v %v %v", from, to, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/x?from=2024-02-01&to=2024-01-01", nil)
	if _, _, err := parseRangeQuery(req); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Fatalf("expected invalid range, got %v", err)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"owner not found", domain.ErrOwnerNotFound, http.StatusNotFound, "owner_not_found"},
		{"wrapped entry not found", fmt.Errorf("lookup: %w", domain.ErrEntryNotFound), http.StatusNotFound, "entry_not_found"},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient_funds"},
		{"not onboarded", domain.ErrNotOnboarded, http.StatusConflict, "owner_not_onboarded"},
		{"already onboarded", domain.ErrAlreadyOnboarded, http.StatusConflict, "already_onboarded"},
		{"missing history", fmt.Errorf("%w: entry e-1 has no balance history", domain.ErrInconsistentState), http.StatusConflict, "inconsistent_state"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := mapDomainError(tt.err)
			if status != tt.wantStatus || code != tt.wantCode {
				t.Fatalf("expected %d/%s, got %d/%s", tt.wantStatus, tt.wantCode, status, code)
			}
		})
	}
}

func TestWriteDomainError_HidesInternalDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	writeDomainError(rr, req, errors.New("pq: connection refused"))

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if rr.Code != http.StatusInternalServerError || resp.Message != "internal server error" {
		t.Fatalf("unexpected response %d %+v", rr.Code, resp)
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
}
