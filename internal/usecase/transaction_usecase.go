package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/metrics"
)

// FeeMode selects how the fee percentage of a new entry is chosen.
type FeeMode string

const (
	// FeeModePercentage uses the given percentage or the owner's default.
	FeeModePercentage FeeMode = "percentage"
	// FeeModeTiered uses the legacy tier table.
	FeeModeTiered FeeMode = "tiered"
)

// TransactionUseCase is the ledger engine. It is the only writer of owner
// balances, ledger entries, balance history and profit aggregates.
type TransactionUseCase struct {
	txManager    TransactionManager
	ownerRepo    OwnerRepository
	entryRepo    LedgerEntryRepository
	historyRepo  BalanceHistoryRepository
	profitRepo   ProfitRepository
	categoryRepo CategoryRepository
	outboxRepo   OutboxRepository
	cache        Cache
	retrier      Retrier
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase. cache, retrier and
// metrics may be nil.
func NewTransactionUseCase(
	txManager TransactionManager,
	ownerRepo OwnerRepository,
	entryRepo LedgerEntryRepository,
	historyRepo BalanceHistoryRepository,
	profitRepo ProfitRepository,
	categoryRepo CategoryRepository,
	outboxRepo OutboxRepository,
	cache Cache,
	retrier Retrier,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:    txManager,
		ownerRepo:    ownerRepo,
		entryRepo:    entryRepo,
		historyRepo:  historyRepo,
		profitRepo:   profitRepo,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		cache:        cache,
		retrier:      retrier,
		idGen:        idGen,
		metrics:      metrics,
	}
}

// CreateTransactionInput is the input for CreateTransaction.
type CreateTransactionInput struct {
	Date          time.Time
	FeePercentage *decimal.Decimal
	CategoryID    *string
	Note          *string
	OwnerID       string
	Kind          domain.TransactionKind
	FeeMode       FeeMode
	Amount        decimal.Decimal
}

// UpdateTransactionInput carries a partial update. Nil fields are left unchanged.
type UpdateTransactionInput struct {
	Amount        *decimal.Decimal
	FeePercentage *decimal.Decimal
	Kind          *domain.TransactionKind
	Date          *time.Time
	CategoryID    *string
	Note          *string
	OwnerID       string
	EntryID       string
}

// CreateTransaction settles a new entry against the owner's balances.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.LedgerEntry, error) {
	start := time.Now()

	if err := validateCreateInput(input); err != nil {
		uc.recordError(err)
		return nil, err
	}

	var entry *domain.LedgerEntry
	err := uc.retry(ctx, func() error {
		var err error
		entry, err = uc.createTransaction(ctx, input)
		return err
	})
	if err != nil {
		uc.recordError(err)
		return nil, err
	}

	uc.invalidateBalances(ctx, input.OwnerID)

	if uc.metrics != nil {
		uc.metrics.ObserveEntry(string(entry.Kind), entry.Amount.InexactFloat64(), entry.FeeAmount.InexactFloat64())
		uc.metrics.TransactionDuration.WithLabelValues("create").Observe(time.Since(start).Seconds())
	}

	return entry, nil
}

func (uc *TransactionUseCase) createTransaction(ctx context.Context, input CreateTransactionInput) (*domain.LedgerEntry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock owner row; serializes writers for the same owner.
	owner, err := uc.ownerRepo.GetByIDForUpdate(txCtx, tx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if !owner.Onboarded {
		return nil, domain.ErrNotOnboarded
	}

	if input.CategoryID != nil {
		if _, err := uc.categoryRepo.GetByID(txCtx, owner.ID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	pct, err := resolveFeePercentage(input, owner)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := &domain.LedgerEntry{
		ID:                      uc.idGen.Generate(),
		OwnerID:                 owner.ID,
		Date:                    normalizeDate(input.Date, now),
		Kind:                    input.Kind,
		Amount:                  input.Amount,
		FeePercentage:           pct,
		CategoryID:              input.CategoryID,
		Note:                    input.Note,
		ElectronicBalanceBefore: owner.ElectronicBalance,
		CashBalanceBefore:       owner.CashBalance,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := entry.Settle(); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.applyEntry(txCtx, tx, entry, now); err != nil {
		return nil, err
	}

	if err := uc.emit(txCtx, tx, domain.EventTypeEntryCreated, entry, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Debug().
		Str("owner_id", entry.OwnerID).
		Str("entry_id", entry.ID).
		Str("kind", string(entry.Kind)).
		Str("amount", entry.Amount.String()).
		Str("fee", entry.FeeAmount.String()).
		Msg("ledger entry created")

	return entry, nil
}

// UpdateTransaction reverses the entry's prior effect and settles it again
// with the updated fields against its original before-snapshot.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*domain.LedgerEntry, error) {
	start := time.Now()

	if err := validateUpdateInput(input); err != nil {
		uc.recordError(err)
		return nil, err
	}

	var entry *domain.LedgerEntry
	err := uc.retry(ctx, func() error {
		var err error
		entry, err = uc.updateTransaction(ctx, input)
		return err
	})
	if err != nil {
		uc.recordError(err)
		return nil, err
	}

	uc.invalidateBalances(ctx, input.OwnerID)

	if uc.metrics != nil {
		uc.metrics.TransactionsUpdated.Inc()
		uc.metrics.TransactionDuration.WithLabelValues("update").Observe(time.Since(start).Seconds())
	}

	return entry, nil
}

func (uc *TransactionUseCase) updateTransaction(ctx context.Context, input UpdateTransactionInput) (*domain.LedgerEntry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	owner, err := uc.ownerRepo.GetByIDForUpdate(txCtx, tx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	entry, err := uc.entryRepo.GetByIDForUpdate(txCtx, tx, input.EntryID)
	if err != nil {
		return nil, err
	}
	if entry.OwnerID != owner.ID {
		return nil, domain.ErrEntryNotFound
	}

	now := time.Now().UTC()
	if err := uc.reverseEntry(txCtx, tx, entry, now); err != nil {
		return nil, err
	}

	if input.Amount != nil {
		entry.Amount = *input.Amount
	}
	if input.FeePercentage != nil {
		entry.FeePercentage = *input.FeePercentage
	}
	if input.Kind != nil {
		entry.Kind = *input.Kind
	}
	if input.Date != nil {
		entry.Date = normalizeDate(*input.Date, now)
	}
	if input.Note != nil {
		entry.Note = input.Note
	}
	if input.CategoryID != nil {
		if _, err := uc.categoryRepo.GetByID(txCtx, owner.ID, *input.CategoryID); err != nil {
			return nil, err
		}
		entry.CategoryID = input.CategoryID
	}
	entry.UpdatedAt = now

	// Before-snapshot stays as captured at creation.
	if err := entry.Settle(); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Update(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.applyEntry(txCtx, tx, entry, now); err != nil {
		return nil, err
	}

	if err := uc.emit(txCtx, tx, domain.EventTypeEntryUpdated, entry, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteTransaction reverses the entry's effect and removes it.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, ownerID, entryID string) error {
	start := time.Now()

	err := uc.retry(ctx, func() error {
		return uc.deleteTransaction(ctx, ownerID, entryID)
	})
	if err != nil {
		uc.recordError(err)
		return err
	}

	uc.invalidateBalances(ctx, ownerID)

	if uc.metrics != nil {
		uc.metrics.TransactionsDeleted.Inc()
		uc.metrics.TransactionDuration.WithLabelValues("delete").Observe(time.Since(start).Seconds())
	}

	return nil
}

func (uc *TransactionUseCase) deleteTransaction(ctx context.Context, ownerID, entryID string) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	owner, err := uc.ownerRepo.GetByIDForUpdate(txCtx, tx, ownerID)
	if err != nil {
		return err
	}

	entry, err := uc.entryRepo.GetByIDForUpdate(txCtx, tx, entryID)
	if err != nil {
		return err
	}
	if entry.OwnerID != owner.ID {
		return domain.ErrEntryNotFound
	}

	now := time.Now().UTC()
	if err := uc.reverseEntry(txCtx, tx, entry, now); err != nil {
		return err
	}

	if err := uc.entryRepo.Delete(txCtx, tx, entry.ID); err != nil {
		return err
	}

	if err := uc.emit(txCtx, tx, domain.EventTypeEntryDeleted, entry, now); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}

// applyEntry moves the owner to the entry's after-balances, adds the fee to
// the profit aggregate and appends the three history records.
func (uc *TransactionUseCase) applyEntry(ctx context.Context, tx Transaction, entry *domain.LedgerEntry, now time.Time) error {
	if err := uc.ownerRepo.UpdateBalances(ctx, tx, entry.OwnerID, entry.After(), now); err != nil {
		return err
	}

	profit, err := uc.profitRepo.GetOrCreateForUpdate(ctx, tx, entry.OwnerID, now)
	if err != nil {
		return err
	}

	profitBefore := profit.TotalProfit
	profit.Apply(entry.Kind, entry.FeeAmount)
	profit.UpdatedAt = now

	if err := uc.profitRepo.Save(ctx, tx, profit); err != nil {
		return err
	}

	entryID := entry.ID
	records := []*domain.BalanceHistoryRecord{
		domain.NewBalanceHistoryRecord(uc.idGen.Generate(), entry.OwnerID, &entryID, domain.BalanceTypeElectronic,
			entry.ElectronicBalanceBefore, entry.ElectronicBalanceAfter, domain.ReasonTransaction, now),
		domain.NewBalanceHistoryRecord(uc.idGen.Generate(), entry.OwnerID, &entryID, domain.BalanceTypeCash,
			entry.CashBalanceBefore, entry.CashBalanceAfter, domain.ReasonTransaction, now),
		domain.NewBalanceHistoryRecord(uc.idGen.Generate(), entry.OwnerID, &entryID, domain.BalanceTypeProfit,
			profitBefore, profit.TotalProfit, domain.ProfitReason(entry.Kind), now),
	}

	return uc.historyRepo.CreateBatch(ctx, tx, records)
}

// reverseEntry undoes applyEntry using the entry's stored snapshot.
func (uc *TransactionUseCase) reverseEntry(ctx context.Context, tx Transaction, entry *domain.LedgerEntry, now time.Time) error {
	if err := uc.ownerRepo.UpdateBalances(ctx, tx, entry.OwnerID, entry.Before(), now); err != nil {
		return err
	}

	removed, err := uc.historyRepo.DeleteByEntry(ctx, tx, entry.ID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("%w: entry %s has no balance history", domain.ErrInconsistentState, entry.ID)
	}

	profit, err := uc.profitRepo.GetOrCreateForUpdate(ctx, tx, entry.OwnerID, now)
	if err != nil {
		return err
	}

	profit.Reverse(entry.Kind, entry.FeeAmount)
	profit.UpdatedAt = now

	return uc.profitRepo.Save(ctx, tx, profit)
}

func (uc *TransactionUseCase) emit(ctx context.Context, tx Transaction, eventType string, entry *domain.LedgerEntry, now time.Time) error {
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   entry.ID,
		AggregateType: domain.AggregateTypeLedgerEntry,
		EventType:     eventType,
		Payload:       domain.EntryEventPayload(entry),
		CreatedAt:     now,
		Published:     false,
	}
	return uc.outboxRepo.Create(ctx, tx, event)
}

func (uc *TransactionUseCase) retry(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}
	return uc.retrier.Retry(ctx, op)
}

func (uc *TransactionUseCase) invalidateBalances(ctx context.Context, ownerID string) {
	if uc.cache == nil {
		return
	}
	if err := bumpBalanceGeneration(ctx, uc.cache, ownerID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("owner_id", ownerID).Msg("failed to invalidate balance cache")
	}
}

func (uc *TransactionUseCase) recordError(err error) {
	if uc.metrics != nil {
		uc.metrics.TransactionErrors.WithLabelValues(errorType(err)).Inc()
	}
}

func validateCreateInput(input CreateTransactionInput) error {
	if !input.Kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, input.Kind)
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return err
	}
	if input.FeePercentage != nil {
		if err := domain.ValidatePercentage(*input.FeePercentage); err != nil {
			return err
		}
	}
	switch input.FeeMode {
	case "", FeeModePercentage, FeeModeTiered:
	default:
		return fmt.Errorf("%w: unknown fee mode %q", domain.ErrInvalidPercentage, input.FeeMode)
	}
	return domain.ValidateNote(input.Note)
}

func validateUpdateInput(input UpdateTransactionInput) error {
	if input.Kind != nil && !input.Kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, *input.Kind)
	}
	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return err
		}
	}
	if input.FeePercentage != nil {
		if err := domain.ValidatePercentage(*input.FeePercentage); err != nil {
			return err
		}
	}
	return domain.ValidateNote(input.Note)
}

func resolveFeePercentage(input CreateTransactionInput, owner *domain.Owner) (decimal.Decimal, error) {
	switch {
	case input.FeeMode == FeeModeTiered:
		return domain.TieredRate(input.Amount, input.Kind)
	case input.FeePercentage != nil:
		return *input.FeePercentage, nil
	default:
		return owner.DefaultFeePercentage, nil
	}
}

// normalizeDate truncates to a calendar date, defaulting to today.
func normalizeDate(d, now time.Time) time.Time {
	if d.IsZero() {
		d = now
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInvalidPercentage):
		return "invalid_percentage"
	case errors.Is(err, domain.ErrInvalidKind):
		return "invalid_kind"
	case errors.Is(err, domain.ErrOwnerNotFound), errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrCategoryNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrNotOnboarded):
		return "not_onboarded"
	case errors.Is(err, domain.ErrInconsistentState):
		return "inconsistent_state"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "internal"
	}
}
