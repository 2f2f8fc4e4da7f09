package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/postgres/generated"
	"github.com/iho/gcashledger/internal/usecase"
)

// LedgerEntryRepository implements usecase.LedgerEntryRepository.
type LedgerEntryRepository struct {
	queries *generated.Queries
}

// NewLedgerEntryRepository creates a new LedgerEntryRepository.
func NewLedgerEntryRepository(db generated.DBTX) *LedgerEntryRepository {
	return &LedgerEntryRepository{queries: generated.New(db)}
}

// Create inserts an entry within a transaction.
func (r *LedgerEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	return txQueries(tx).CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:                      entry.ID,
		OwnerID:                 entry.OwnerID,
		Kind:                    string(entry.Kind),
		Amount:                  decimalToNumeric(entry.Amount),
		FeePercentage:           decimalToNumeric(entry.FeePercentage),
		FeeAmount:               decimalToNumeric(entry.FeeAmount),
		EntryDate:               dateToPgDate(entry.Date),
		CategoryID:              stringPtrToText(entry.CategoryID),
		Note:                    stringPtrToText(entry.Note),
		ElectronicBalanceBefore: decimalToNumeric(entry.ElectronicBalanceBefore),
		ElectronicBalanceAfter:  decimalToNumeric(entry.ElectronicBalanceAfter),
		CashBalanceBefore:       decimalToNumeric(entry.CashBalanceBefore),
		CashBalanceAfter:        decimalToNumeric(entry.CashBalanceAfter),
		CreatedAt:               timeToPgTimestamptz(entry.CreatedAt),
		UpdatedAt:               timeToPgTimestamptz(entry.UpdatedAt),
	})
}

// Update rewrites the mutable fields and the after-balances. The
// before-balances are never written after creation.
func (r *LedgerEntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	n, err := txQueries(tx).UpdateLedgerEntry(ctx, generated.UpdateLedgerEntryParams{
		ID:                     entry.ID,
		Kind:                   string(entry.Kind),
		Amount:                 decimalToNumeric(entry.Amount),
		FeePercentage:          decimalToNumeric(entry.FeePercentage),
		FeeAmount:              decimalToNumeric(entry.FeeAmount),
		EntryDate:              dateToPgDate(entry.Date),
		CategoryID:             stringPtrToText(entry.CategoryID),
		Note:                   stringPtrToText(entry.Note),
		ElectronicBalanceAfter: decimalToNumeric(entry.ElectronicBalanceAfter),
		CashBalanceAfter:       decimalToNumeric(entry.CashBalanceAfter),
		UpdatedAt:              timeToPgTimestamptz(entry.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete removes an entry.
func (r *LedgerEntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	n, err := txQueries(tx).DeleteLedgerEntry(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// GetByID retrieves an entry by ID.
func (r *LedgerEntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	row, err := r.queries.GetLedgerEntryByID(ctx, id)
	if err != nil {
		return nil, entryLookupError(err)
	}

	return rowToLedgerEntry(row), nil
}

// GetByIDForUpdate retrieves an entry by ID with a FOR UPDATE lock.
func (r *LedgerEntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LedgerEntry, error) {
	row, err := txQueries(tx).GetLedgerEntryByIDForUpdate(ctx, id)
	if err != nil {
		return nil, entryLookupError(err)
	}

	return rowToLedgerEntry(row), nil
}

// List returns an owner's entries, newest first.
func (r *LedgerEntryRepository) List(ctx context.Context, ownerID string, filter domain.EntryFilter, limit, offset int) ([]*domain.LedgerEntry, error) {
	params := generated.ListLedgerEntriesParams{
		OwnerID:    ownerID,
		CategoryID: stringPtrToText(filter.CategoryID),
		FromDate:   optionalDate(filter.From),
		ToDate:     optionalDate(filter.To),
		Limit:      int32(limit),
		Offset:     int32(offset),
	}
	if filter.Kind != nil {
		params.Kind = pgtype.Text{String: string(*filter.Kind), Valid: true}
	}

	rows, err := r.queries.ListLedgerEntries(ctx, params)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToLedgerEntry(row))
	}

	return entries, nil
}

// LatestBefore returns the most recent entry dated strictly before date.
func (r *LedgerEntryRepository) LatestBefore(ctx context.Context, ownerID string, date time.Time) (*domain.LedgerEntry, error) {
	row, err := r.queries.GetLatestEntryBefore(ctx, generated.GetLatestEntryBeforeParams{
		OwnerID:   ownerID,
		EntryDate: dateToPgDate(date),
	})
	if err != nil {
		return nil, entryLookupError(err)
	}

	return rowToLedgerEntry(row), nil
}

func entryLookupError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEntryNotFound
	}
	return err
}

func rowToLedgerEntry(row generated.LedgerEntry) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:                      row.ID,
		OwnerID:                 row.OwnerID,
		Kind:                    domain.TransactionKind(row.Kind),
		Amount:                  numericToDecimal(row.Amount),
		FeePercentage:           numericToDecimal(row.FeePercentage),
		FeeAmount:               numericToDecimal(row.FeeAmount),
		Date:                    pgDateToTime(row.EntryDate),
		CategoryID:              textToStringPtr(row.CategoryID),
		Note:                    textToStringPtr(row.Note),
		ElectronicBalanceBefore: numericToDecimal(row.ElectronicBalanceBefore),
		ElectronicBalanceAfter:  numericToDecimal(row.ElectronicBalanceAfter),
		CashBalanceBefore:       numericToDecimal(row.CashBalanceBefore),
		CashBalanceAfter:        numericToDecimal(row.CashBalanceAfter),
		CreatedAt:               row.CreatedAt.Time,
		UpdatedAt:               row.UpdatedAt.Time,
	}
}
