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

func sampleEntry(id string) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:                      id,
		OwnerID:                 "owner-1",
		Kind:                    domain.KindCashIn,
		Amount:                  decimal.RequireFromString("1000"),
		FeePercentage:           decimal.RequireFromString("2"),
		FeeAmount:               decimal.RequireFromString("20"),
		ElectronicBalanceBefore: decimal.RequireFromString("5000"),
		ElectronicBalanceAfter:  decimal.RequireFromString("4000"),
		CashBalanceBefore:       decimal.RequireFromString("5000"),
		CashBalanceAfter:        decimal.RequireFromString("6020"),
		Date:                    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransactionHandler_Create(t *testing.T) {
	var captured usecase.CreateTransactionInput
	h := NewTransactionHandler(&transactionServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.LedgerEntry, error) {
			captured = input
			return sampleEntry("entry-1"), nil
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(http.MethodPost, "/api/v1/owners/owner-1/transactions",
		`{"kind":"cash-in","amount":"1000","date":"2024-03-15"}`,
		map[string]string{OwnerIDParam: "owner-1"}))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.OwnerID != "owner-1" || captured.Kind != domain.KindCashIn || captured.FeePercentage != nil {
		t.Fatalf("unexpected input %+v", captured)
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "entry-1" || resp.CashBalanceAfter != "6020.00" || resp.FeeAmount != "20.00" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestTransactionHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"insufficient funds", `{"kind":"cash_in","amount":"999999"}`, domain.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient_funds"},
		{"not onboarded", `{"kind":"cash_in","amount":"1"}`, domain.ErrNotOnboarded, http.StatusConflict, "owner_not_onboarded"},
		{"bad kind", `{"kind":"refund","amount":"1"}`, nil, http.StatusBadRequest, "invalid_kind"},
		{"bad fee", `{"kind":"cash_in","amount":"1","fee_percentage":"101"}`, domain.ErrInvalidPercentage, http.StatusBadRequest, "invalid_percentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTransactionHandler(&transactionServiceStub{
				createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.LedgerEntry, error) {
					if tt.err == nil {
						t.Fatal("CreateTransaction should not be called for invalid payload")
					}
					return nil, tt.err
				},
			}, nil)

			rec := httptest.NewRecorder()
			h.Create(rec, newRequest(http.MethodPost, "/", tt.body, map[string]string{OwnerIDParam: "owner-1"}))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error != tt.wantCode {
				t.Fatalf("expected code %s, got %s", tt.wantCode, resp.Error)
			}
		})
	}
}

func TestTransactionHandler_UpdateAndDelete(t *testing.T) {
	var updated usecase.UpdateTransactionInput
	var deleted string
	h := NewTransactionHandler(&transactionServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.LedgerEntry, error) {
			updated = input
			return sampleEntry(input.EntryID), nil
		},
		deleteFn: func(ctx context.Context, ownerID, entryID string) error {
			if entryID == "missing" {
				return domain.ErrEntryNotFound
			}
			deleted = entryID
			return nil
		},
	}, nil)

	params := map[string]string{OwnerIDParam: "owner-1", EntryIDParam: "entry-9"}

	rec := httptest.NewRecorder()
	h.Update(rec, newRequest(http.MethodPatch, "/", `{"amount":"750"}`, params))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if updated.EntryID != "entry-9" || updated.Amount == nil || !updated.Amount.Equal(decimal.NewFromInt(750)) {
		t.Fatalf("unexpected update input %+v", updated)
	}

	rec = httptest.NewRecorder()
	h.Delete(rec, newRequest(http.MethodDelete, "/", "", params))
	if rec.Code != http.StatusNoContent || deleted != "entry-9" {
		t.Fatalf("expected 204 deleting entry-9, got %d %q", rec.Code, deleted)
	}

	rec = httptest.NewRecorder()
	h.Delete(rec, newRequest(http.MethodDelete, "/", "", map[string]string{OwnerIDParam: "owner-1", EntryIDParam: "missing"}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransactionHandler_List_AppliesFilter(t *testing.T) {
	var gotFilter domain.EntryFilter
	var gotLimit, gotOffset int
	h := NewTransactionHandler(nil, &entryReaderStub{
		listFn: func(ctx context.Context, ownerID string, filter domain.EntryFilter, limit, offset int) ([]*domain.LedgerEntry, error) {
			gotFilter, gotLimit, gotOffset = filter, limit, offset
			return []*domain.LedgerEntry{sampleEntry("a"), sampleEntry("b")}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet, "/?kind=cash-out&category_id=cat-1&from=2024-01-01&limit=10&offset=5", "",
		map[string]string{OwnerIDParam: "owner-1"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotFilter.Kind == nil || *gotFilter.Kind != domain.KindCashOut {
		t.Fatalf("kind filter = %v", gotFilter.Kind)
	}
	if gotFilter.CategoryID == nil || *gotFilter.CategoryID != "cat-1" || gotFilter.From == nil || gotFilter.To != nil {
		t.Fatalf("unexpected filter %+v", gotFilter)
	}
	if gotLimit != 10 || gotOffset != 5 {
		t.Fatalf("pagination = %d/%d", gotLimit, gotOffset)
	}

	var resp dto.ListEntriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("total = %d", resp.Total)
	}
}
