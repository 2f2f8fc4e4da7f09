package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
)

func TestEntryFromDomain(t *testing.T) {
	now := time.Now()
	entry := &domain.LedgerEntry{
		ID:                      "entry-1",
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
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	resp := EntryFromDomain(entry)
	if resp.Amount != "1000.00" || resp.FeeAmount != "20.00" || resp.CashBalanceAfter != "6020.00" {
		t.Fatalf("unexpected money formatting: %+v", resp)
	}
	if resp.Date != "2024-03-15" || resp.Kind != "cash_in" {
		t.Fatalf("unexpected entry response: %+v", resp)
	}

	list := EntriesFromDomain([]*domain.LedgerEntry{entry})
	if len(list) != 1 || list[0].ID != entry.ID {
		t.Fatalf("EntriesFromDomain returned %+v", list)
	}
}

func TestBalancesFromDomain(t *testing.T) {
	resp := BalancesFromDomain(domain.Balances{
		Electronic: decimal.RequireFromString("4000"),
		Cash:       decimal.RequireFromString("6020.5"),
	})
	if resp.Electronic != "4000.00" || resp.Cash != "6020.50" || resp.Total != "10020.50" {
		t.Fatalf("unexpected balances: %+v", resp)
	}
}

func TestOwnerFromDomain_OmitsPassword(t *testing.T) {
	resp := OwnerFromDomain(&domain.Owner{
		ID:                   "owner-1",
		Email:                "agent@example.com",
		PasswordHash:         "secret-hash",
		DefaultFeePercentage: decimal.RequireFromString("2"),
	})

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := fields["password_hash"]; ok {
		t.Fatal("password hash must not be serialised")
	}
	if fields["default_fee_percentage"] != "2.00" {
		t.Fatalf("fee = %v", fields["default_fee_percentage"])
	}
}

func TestReconciliationFromUseCase_EmptyDiscrepancies(t *testing.T) {
	resp := ReconciliationFromUseCase(&usecase.ReconciliationResult{OwnerID: "owner-1", IsReconciled: true})

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Discrepancies []string `json:"discrepancies"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Discrepancies == nil {
		t.Fatal("discrepancies must encode as an empty array")
	}
}

func TestTrendFromDomain(t *testing.T) {
	points := TrendFromDomain([]domain.TrendPoint{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: decimal.RequireFromString("12.345")},
	})
	if len(points) != 1 || points[0].Date != "2024-01-01" || points[0].Value != "12.35" {
		t.Fatalf("unexpected trend: %+v", points)
	}
}
