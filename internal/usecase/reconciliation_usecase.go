package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationUseCase checks profit aggregates against the live ledger.
type ReconciliationUseCase struct {
	ownerRepo     OwnerRepository
	profitRepo    ProfitRepository
	analyticsRepo AnalyticsRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	ownerRepo OwnerRepository,
	profitRepo ProfitRepository,
	analyticsRepo AnalyticsRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		ownerRepo:     ownerRepo,
		profitRepo:    profitRepo,
		analyticsRepo: analyticsRepo,
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	OwnerID          string
	RecordedProfit   decimal.Decimal
	CalculatedProfit decimal.Decimal
	Difference       decimal.Decimal
	RecordedCount    int64
	CalculatedCount  int64
	Discrepancies    []string
	IsReconciled     bool
	LastChecked      time.Time
}

// ReconcileOwner compares the owner's profit aggregate with the sum of fees
// and the count of live entries.
func (uc *ReconciliationUseCase) ReconcileOwner(ctx context.Context, ownerID string) (*ReconciliationResult, error) {
	if _, err := uc.ownerRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	aggregate, err := uc.profitRepo.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	sums, err := uc.analyticsRepo.ProfitSums(ctx, ownerID, nil, nil)
	if err != nil {
		return nil, err
	}

	result := &ReconciliationResult{
		OwnerID:          ownerID,
		RecordedProfit:   aggregate.TotalProfit,
		CalculatedProfit: sums.Total,
		Difference:       aggregate.TotalProfit.Sub(sums.Total),
		RecordedCount:    aggregate.TransactionCount,
		CalculatedCount:  sums.Count,
		Discrepancies:    make([]string, 0),
		LastChecked:      time.Now().UTC(),
	}

	if !aggregate.TotalProfit.Equal(sums.Total) {
		result.Discrepancies = append(result.Discrepancies,
			fmt.Sprintf("total_profit=%s ledger=%s", aggregate.TotalProfit, sums.Total))
	}
	if !aggregate.ProfitFromCashIn.Equal(sums.CashIn) {
		result.Discrepancies = append(result.Discrepancies,
			fmt.Sprintf("profit_from_cash_in=%s ledger=%s", aggregate.ProfitFromCashIn, sums.CashIn))
	}
	if !aggregate.ProfitFromCashOut.Equal(sums.CashOut) {
		result.Discrepancies = append(result.Discrepancies,
			fmt.Sprintf("profit_from_cash_out=%s ledger=%s", aggregate.ProfitFromCashOut, sums.CashOut))
	}
	if aggregate.TransactionCount != sums.Count {
		result.Discrepancies = append(result.Discrepancies,
			fmt.Sprintf("transaction_count=%d ledger=%d", aggregate.TransactionCount, sums.Count))
	}
	if !aggregate.IsBalanced() {
		result.Discrepancies = append(result.Discrepancies, "total_profit does not equal cash_in plus cash_out")
	}

	result.IsReconciled = len(result.Discrepancies) == 0

	return result, nil
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalOwners      int
	ReconciledOwners int
	Discrepancies    []*ReconciliationResult
	CheckedAt        time.Time
}

// GenerateReconciliationReport reconciles every owner.
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	report := &ReconciliationReport{
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	const pageSize = 500
	for offset := 0; ; offset += pageSize {
		owners, err := uc.ownerRepo.List(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}

		for _, owner := range owners {
			result, err := uc.ReconcileOwner(ctx, owner.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to reconcile owner %s: %w", owner.ID, err)
			}

			report.TotalOwners++
			if result.IsReconciled {
				report.ReconciledOwners++
			} else {
				report.Discrepancies = append(report.Discrepancies, result)
			}
		}

		if len(owners) < pageSize {
			break
		}
	}

	return report, nil
}
