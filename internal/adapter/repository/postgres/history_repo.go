package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/postgres/generated"
	"github.com/iho/gcashledger/internal/usecase"
)

// BalanceHistoryRepository implements usecase.BalanceHistoryRepository.
type BalanceHistoryRepository struct {
	queries *generated.Queries
}

// NewBalanceHistoryRepository creates a new BalanceHistoryRepository.
func NewBalanceHistoryRepository(db generated.DBTX) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{queries: generated.New(db)}
}

// CreateBatch appends history records within a transaction.
func (r *BalanceHistoryRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, records []*domain.BalanceHistoryRecord) error {
	queries := txQueries(tx)

	for _, rec := range records {
		err := queries.CreateBalanceHistory(ctx, generated.CreateBalanceHistoryParams{
			ID:           rec.ID,
			OwnerID:      rec.OwnerID,
			EntryID:      stringPtrToText(rec.EntryID),
			BalanceType:  string(rec.BalanceType),
			AmountBefore: decimalToNumeric(rec.AmountBefore),
			AmountAfter:  decimalToNumeric(rec.AmountAfter),
			ChangeAmount: decimalToNumeric(rec.ChangeAmount),
			Reason:       rec.Reason,
			CreatedAt:    timeToPgTimestamptz(rec.CreatedAt),
		})
		if err != nil {
			return fmt.Errorf("insert %s history: %w", rec.BalanceType, err)
		}
	}

	return nil
}

// DeleteByEntry removes every record attached to an entry.
func (r *BalanceHistoryRepository) DeleteByEntry(ctx context.Context, tx usecase.Transaction, entryID string) (int64, error) {
	return txQueries(tx).DeleteBalanceHistoryByEntry(ctx, pgtype.Text{String: entryID, Valid: true})
}

// List returns an owner's records created in [from, before), in creation order.
func (r *BalanceHistoryRepository) List(ctx context.Context, ownerID string, from, before *time.Time) ([]*domain.BalanceHistoryRecord, error) {
	rows, err := r.queries.ListBalanceHistory(ctx, generated.ListBalanceHistoryParams{
		OwnerID:  ownerID,
		FromTime: optionalTimestamptz(from),
		ToTime:   optionalTimestamptz(before),
	})
	if err != nil {
		return nil, err
	}

	records := make([]*domain.BalanceHistoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, &domain.BalanceHistoryRecord{
			ID:           row.ID,
			OwnerID:      row.OwnerID,
			EntryID:      textToStringPtr(row.EntryID),
			BalanceType:  domain.BalanceType(row.BalanceType),
			AmountBefore: numericToDecimal(row.AmountBefore),
			AmountAfter:  numericToDecimal(row.AmountAfter),
			ChangeAmount: numericToDecimal(row.ChangeAmount),
			Reason:       row.Reason,
			CreatedAt:    row.CreatedAt.Time,
		})
	}

	return records, nil
}
