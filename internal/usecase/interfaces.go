package usecase

import (
	"context"
	"time"

	"github.com/iho/gcashledger/internal/domain"
)

// OwnerRepository defines data access for owners.
type OwnerRepository interface {
	Create(ctx context.Context, owner *domain.Owner) error
	GetByID(ctx context.Context, id string) (*domain.Owner, error)
	GetByEmail(ctx context.Context, email string) (*domain.Owner, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Owner, error)
	UpdateBalances(ctx context.Context, tx Transaction, id string, balances domain.Balances, updatedAt time.Time) error
	CompleteOnboarding(ctx context.Context, tx Transaction, owner *domain.Owner) error
	List(ctx context.Context, limit, offset int) ([]*domain.Owner, error)
}

// LedgerEntryRepository defines data access for ledger entries.
type LedgerEntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	Update(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	Delete(ctx context.Context, tx Transaction, id string) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.LedgerEntry, error)
	List(ctx context.Context, ownerID string, filter domain.EntryFilter, limit, offset int) ([]*domain.LedgerEntry, error)
	// LatestBefore returns the most recent entry dated strictly before date,
	// or domain.ErrEntryNotFound.
	LatestBefore(ctx context.Context, ownerID string, date time.Time) (*domain.LedgerEntry, error)
}

// BalanceHistoryRepository defines data access for the balance audit trail.
type BalanceHistoryRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, records []*domain.BalanceHistoryRecord) error
	// DeleteByEntry removes the records of one entry and returns how many were removed.
	DeleteByEntry(ctx context.Context, tx Transaction, entryID string) (int64, error)
	// List returns records created in [from, before); nil bounds are open.
	List(ctx context.Context, ownerID string, from, before *time.Time) ([]*domain.BalanceHistoryRecord, error)
}

// ProfitRepository defines data access for profit aggregates.
type ProfitRepository interface {
	// GetOrCreateForUpdate locks the owner's aggregate, creating a zero one if missing.
	GetOrCreateForUpdate(ctx context.Context, tx Transaction, ownerID string, now time.Time) (*domain.ProfitAggregate, error)
	GetOrCreate(ctx context.Context, ownerID string) (*domain.ProfitAggregate, error)
	Save(ctx context.Context, tx Transaction, aggregate *domain.ProfitAggregate) error
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Category, error)
	List(ctx context.Context, ownerID string) ([]*domain.Category, error)
}

// AnalyticsRepository runs read-only aggregations over ledger entries.
type AnalyticsRepository interface {
	ProfitSums(ctx context.Context, ownerID string, from, to *time.Time) (domain.ProfitSums, error)
	PeriodTotals(ctx context.Context, ownerID string, start, end time.Time) (domain.PeriodTotals, error)
	BalanceTrend(ctx context.Context, ownerID string, field domain.TrendField, start, end time.Time) ([]domain.TrendPoint, error)
	ProfitTrend(ctx context.Context, ownerID string, period domain.ReportPeriod, start, end time.Time) ([]domain.TrendPoint, error)
	// BalanceStats fills Max, Min and Average per pool; Current is left zero.
	BalanceStats(ctx context.Context, ownerID string) (domain.BalanceStats, error)
}

// ReportRepository defines data access for persisted reports.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Report, error)
	List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Report, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// ReportRenderer renders a report and its entries into a document.
type ReportRenderer interface {
	ContentType() string
	Render(report *domain.Report, entries []*domain.LedgerEntry) ([]byte, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so the request can be retried.
	Release(ctx context.Context, key string) error
}
