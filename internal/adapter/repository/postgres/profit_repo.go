package postgres

import (
	"context"
	"time"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/postgres/generated"
	"github.com/iho/gcashledger/internal/usecase"
)

// ProfitRepository implements usecase.ProfitRepository.
type ProfitRepository struct {
	queries *generated.Queries
}

// NewProfitRepository creates a new ProfitRepository.
func NewProfitRepository(db generated.DBTX) *ProfitRepository {
	return &ProfitRepository{queries: generated.New(db)}
}

// GetOrCreateForUpdate inserts a zero aggregate when missing and then locks it.
func (r *ProfitRepository) GetOrCreateForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string, now time.Time) (*domain.ProfitAggregate, error) {
	queries := txQueries(tx)

	if err := queries.EnsureProfitAggregate(ctx, generated.EnsureProfitAggregateParams{
		OwnerID:   ownerID,
		UpdatedAt: timeToPgTimestamptz(now),
	}); err != nil {
		return nil, err
	}

	row, err := queries.GetProfitAggregateForUpdate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return rowToProfitAggregate(row), nil
}

// GetOrCreate returns the owner's aggregate outside a transaction.
func (r *ProfitRepository) GetOrCreate(ctx context.Context, ownerID string) (*domain.ProfitAggregate, error) {
	if err := r.queries.EnsureProfitAggregate(ctx, generated.EnsureProfitAggregateParams{
		OwnerID:   ownerID,
		UpdatedAt: timeToPgTimestamptz(time.Now().UTC()),
	}); err != nil {
		return nil, err
	}

	row, err := r.queries.GetProfitAggregate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return rowToProfitAggregate(row), nil
}

// Save writes the aggregate within a transaction.
func (r *ProfitRepository) Save(ctx context.Context, tx usecase.Transaction, aggregate *domain.ProfitAggregate) error {
	return txQueries(tx).UpdateProfitAggregate(ctx, generated.UpdateProfitAggregateParams{
		OwnerID:           aggregate.OwnerID,
		TotalProfit:       decimalToNumeric(aggregate.TotalProfit),
		ProfitFromCashIn:  decimalToNumeric(aggregate.ProfitFromCashIn),
		ProfitFromCashOut: decimalToNumeric(aggregate.ProfitFromCashOut),
		TransactionCount:  aggregate.TransactionCount,
		UpdatedAt:         timeToPgTimestamptz(aggregate.UpdatedAt),
	})
}

func rowToProfitAggregate(row generated.ProfitAggregate) *domain.ProfitAggregate {
	return &domain.ProfitAggregate{
		OwnerID:           row.OwnerID,
		TotalProfit:       numericToDecimal(row.TotalProfit),
		ProfitFromCashIn:  numericToDecimal(row.ProfitFromCashIn),
		ProfitFromCashOut: numericToDecimal(row.ProfitFromCashOut),
		TransactionCount:  row.TransactionCount,
		UpdatedAt:         row.UpdatedAt.Time,
	}
}
