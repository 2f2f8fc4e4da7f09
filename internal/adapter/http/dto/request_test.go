package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
)

func strPtr(s string) *string { return &s }

func TestCreateTransactionRequest_ToUseCaseInput(t *testing.T) {
	tests := []struct {
		name    string
		request *CreateTransactionRequest
		check   func(t *testing.T, got usecase.CreateTransactionInput)
		wantErr error
	}{
		{
			name: "hyphenated kind with explicit fee and date",
			request: &CreateTransactionRequest{
				Kind:          "cash-in",
				Amount:        "1000",
				FeePercentage: strPtr("2.5"),
				Date:          strPtr("2024-03-15"),
				Note:          strPtr("load"),
			},
			check: func(t *testing.T, got usecase.CreateTransactionInput) {
				if got.OwnerID != "owner-1" || got.Kind != domain.KindCashIn {
					t.Fatalf("unexpected input: %+v", got)
				}
				if !got.Amount.Equal(decimal.RequireFromString("1000")) {
					t.Fatalf("amount = %s", got.Amount)
				}
				if got.FeePercentage == nil || !got.FeePercentage.Equal(decimal.RequireFromString("2.5")) {
					t.Fatalf("fee = %v", got.FeePercentage)
				}
				if !got.Date.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
					t.Fatalf("date = %s", got.Date)
				}
				if got.Note == nil || *got.Note != "load" {
					t.Fatalf("note = %v", got.Note)
				}
			},
		},
		{
			name:    "tiered fee mode is lowercased",
			request: &CreateTransactionRequest{Kind: "cash_out", Amount: "500", FeeMode: "TIERED"},
			check: func(t *testing.T, got usecase.CreateTransactionInput) {
				if got.FeeMode != usecase.FeeModeTiered {
					t.Fatalf("fee mode = %q", got.FeeMode)
				}
				if !got.Date.IsZero() {
					t.Fatalf("expected zero date, got %s", got.Date)
				}
			},
		},
		{
			name:    "unknown kind",
			request: &CreateTransactionRequest{Kind: "transfer", Amount: "1"},
			wantErr: domain.ErrInvalidKind,
		},
		{
			name:    "amount not a number",
			request: &CreateTransactionRequest{Kind: "cash_in", Amount: "lots"},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "fee not a number",
			request: &CreateTransactionRequest{Kind: "cash_in", Amount: "1", FeePercentage: strPtr("x")},
			wantErr: domain.ErrInvalidPercentage,
		},
		{
			name:    "bad date",
			request: &CreateTransactionRequest{Kind: "cash_in", Amount: "1", Date: strPtr("15/03/2024")},
			wantErr: domain.ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.request.ToUseCaseInput("owner-1")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestUpdateTransactionRequest_ToUseCaseInput(t *testing.T) {
	req := &UpdateTransactionRequest{Amount: strPtr("250.50"), Kind: strPtr("cash-out")}

	got, err := req.ToUseCaseInput("owner-1", "entry-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.EntryID != "entry-1" || got.OwnerID != "owner-1" {
		t.Fatalf("ids not carried: %+v", got)
	}
	if got.Amount == nil || got.Amount.String() != "250.5" {
		t.Fatalf("amount = %v", got.Amount)
	}
	if got.Kind == nil || *got.Kind != domain.KindCashOut {
		t.Fatalf("kind = %v", got.Kind)
	}
	if got.FeePercentage != nil || got.Date != nil {
		t.Fatalf("omitted fields must stay nil: %+v", got)
	}

	if _, err := (&UpdateTransactionRequest{Date: strPtr("yesterday")}).ToUseCaseInput("o", "e"); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Fatalf("expected date error, got %v", err)
	}
}

func TestOnboardingRequest_DefaultsFee(t *testing.T) {
	got, err := (&OnboardingRequest{ElectronicBalance: "5000", CashBalance: "2500.25"}).ToUseCaseInput("owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.DefaultFeePercentage.Equal(domain.DefaultFeePercentage) {
		t.Fatalf("fee = %s, want default", got.DefaultFeePercentage)
	}
	if !got.CashBalance.Equal(decimal.RequireFromString("2500.25")) {
		t.Fatalf("cash = %s", got.CashBalance)
	}

	if _, err := (&OnboardingRequest{ElectronicBalance: "", CashBalance: "1"}).ToUseCaseInput("owner-1"); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

func TestGenerateReportRequest_ToUseCaseInput(t *testing.T) {
	got, err := (&GenerateReportRequest{Period: "Monthly", StartDate: "2024-01-01", EndDate: "2024-01-31"}).ToUseCaseInput("owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Period != domain.PeriodMonthly || got.EndDate.Day() != 31 {
		t.Fatalf("unexpected input: %+v", got)
	}

	if _, err := (&GenerateReportRequest{Period: "hourly", StartDate: "2024-01-01", EndDate: "2024-01-02"}).ToUseCaseInput("o"); !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Fatalf("expected invalid period, got %v", err)
	}
}
