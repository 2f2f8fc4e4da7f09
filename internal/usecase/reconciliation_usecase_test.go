package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
	"github.com/iho/gcashledger/internal/usecase/mocks"
)

func TestReconcileOwner(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, "5000", "5000")

	for _, amount := range []string{"100", "250", "75.50"} {
		if _, err := f.uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
			OwnerID: "owner-1", Kind: domain.KindCashIn, Amount: dec(amount),
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	entry, err := f.uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
		OwnerID: "owner-1", Kind: domain.KindCashOut, Amount: dec("400"), FeePercentage: ptr(dec("1.5")),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.uc.DeleteTransaction(ctx, "owner-1", entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	uc := usecase.NewReconciliationUseCase(f.owners, f.profits, mocks.NewMockAnalyticsRepository(f.entries))

	result, err := uc.ReconcileOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !result.IsReconciled {
		t.Fatalf("expected reconciled, discrepancies: %v", result.Discrepancies)
	}
	assertMoney(t, "recorded", result.RecordedProfit, "8.51")
	if result.RecordedCount != 3 {
		t.Errorf("recorded count = %d, want 3", result.RecordedCount)
	}

	// Drift the aggregate behind the engine's back.
	agg := f.profit(t)
	agg.TotalProfit = agg.TotalProfit.Add(dec("1"))
	f.profits.Seed(agg)

	result, err = uc.ReconcileOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if result.IsReconciled {
		t.Error("expected discrepancy after drift")
	}
	assertMoney(t, "difference", result.Difference, "1")
	if len(result.Discrepancies) != 2 {
		t.Errorf("discrepancies = %v, want total mismatch and unbalanced aggregate", result.Discrepancies)
	}

	if _, err := uc.ReconcileOwner(ctx, "ghost"); !errors.Is(err, domain.ErrOwnerNotFound) {
		t.Errorf("expected owner not found, got %v", err)
	}
}

func TestGenerateReconciliationReport(t *testing.T) {
	ctx := context.Background()
	owners := mocks.NewMockOwnerRepository()
	profits := mocks.NewMockProfitRepository()
	entries := mocks.NewMockLedgerEntryRepository()

	owners.Seed(&domain.Owner{ID: "owner-a"})
	owners.Seed(&domain.Owner{ID: "owner-b"})
	profits.Seed(&domain.ProfitAggregate{OwnerID: "owner-b", TotalProfit: dec("5"), ProfitFromCashIn: dec("5"), TransactionCount: 1})

	uc := usecase.NewReconciliationUseCase(owners, profits, mocks.NewMockAnalyticsRepository(entries))

	report, err := uc.GenerateReconciliationReport(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.TotalOwners != 2 || report.ReconciledOwners != 1 {
		t.Errorf("total=%d reconciled=%d", report.TotalOwners, report.ReconciledOwners)
	}
	if len(report.Discrepancies) != 1 || report.Discrepancies[0].OwnerID != "owner-b" {
		t.Errorf("unexpected discrepancies: %+v", report.Discrepancies)
	}
}
