package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gcashledger/internal/adapter/repository/postgres"
	"github.com/iho/gcashledger/internal/domain"
	infra "github.com/iho/gcashledger/internal/infrastructure/postgres"
	"github.com/iho/gcashledger/internal/usecase"
)

const migrationsPath = "../../../../migrations"

type ledgerFixture struct {
	pool      *pgxpool.Pool
	owners    *postgres.OwnerRepository
	ownerUC   *usecase.OwnerUseCase
	txUC      *usecase.TransactionUseCase
	queryUC   *usecase.QueryUseCase
	reconcile *usecase.ReconciliationUseCase
}

// newLedgerFixture connects to TEST_DATABASE_URL, migrates it and empties
// every ledger table.
func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if err := infra.RunMigrations(dbURL, migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := infra.NewPool(ctx, dbURL, 20, 2)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `
		TRUNCATE TABLE outbox_events, reports, balance_history, ledger_entries,
			profit_aggregates, categories, owners CASCADE
	`); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}

	txManager := postgres.NewTxManager(pool, 2*time.Second)
	owners := postgres.NewOwnerRepository(pool)
	entries := postgres.NewLedgerEntryRepository(pool)
	history := postgres.NewBalanceHistoryRepository(pool)
	profits := postgres.NewProfitRepository(pool)
	categories := postgres.NewCategoryRepository(pool)
	analytics := postgres.NewAnalyticsRepository(pool)
	outbox := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()

	return &ledgerFixture{
		pool:   pool,
		owners: owners,
		ownerUC: usecase.NewOwnerUseCase(txManager, owners, history, profits, outbox, nil, idGen, nil),
		txUC: usecase.NewTransactionUseCase(txManager, owners, entries, history, profits, categories, outbox,
			nil, postgres.NewRetrier(), idGen, nil),
		queryUC:   usecase.NewQueryUseCase(owners, entries, history, profits, analytics),
		reconcile: usecase.NewReconciliationUseCase(owners, profits, analytics),
	}
}

func (f *ledgerFixture) onboardedOwner(t *testing.T, email string, electronic, cash int64) *domain.Owner {
	t.Helper()
	ctx := context.Background()

	owner, err := f.ownerUC.Signup(ctx, usecase.SignupInput{Name: "Agent", Email: email, Password: "Secret123"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	owner, err = f.ownerUC.CompleteOnboarding(ctx, usecase.CompleteOnboardingInput{
		OwnerID:              owner.ID,
		ElectronicBalance:    decimal.NewFromInt(electronic),
		CashBalance:          decimal.NewFromInt(cash),
		DefaultFeePercentage: decimal.NewFromInt(2),
	})
	if err != nil {
		t.Fatalf("onboarding: %v", err)
	}
	return owner
}

func TestLedgerScenario(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	owner := f.onboardedOwner(t, "scenario@example.com", 1000, 500)

	cashIn, err := f.txUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
		OwnerID: owner.ID,
		Kind:    domain.KindCashIn,
		Amount:  decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("cash-in: %v", err)
	}
	if !cashIn.FeeAmount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected fee 20, got %s", cashIn.FeeAmount)
	}

	if _, err := f.txUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
		OwnerID: owner.ID,
		Kind:    domain.KindCashOut,
		Amount:  decimal.NewFromInt(300),
	}); err != nil {
		t.Fatalf("cash-out: %v", err)
	}

	balances, err := f.queryUC.CurrentBalances(ctx, owner.ID)
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	if !balances.Electronic.Equal(decimal.NewFromInt(300)) || !balances.Cash.Equal(decimal.NewFromInt(226)) {
		t.Fatalf("unexpected balances %+v", balances)
	}

	_, err = f.txUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
		OwnerID: owner.ID,
		Kind:    domain.KindCashIn,
		Amount:  decimal.NewFromInt(5000),
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	stats, err := f.queryUC.ProfitStats(ctx, owner.ID, nil, nil)
	if err != nil {
		t.Fatalf("profit stats: %v", err)
	}
	if !stats.TotalProfit.Equal(decimal.NewFromInt(26)) || stats.TransactionCount != 2 {
		t.Fatalf("unexpected profit %+v", stats)
	}

	if err := f.txUC.DeleteTransaction(ctx, owner.ID, cashIn.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	result, err := f.reconcile.ReconcileOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !result.IsReconciled {
		t.Fatalf("expected reconciled ledger, got %+v", result.Discrepancies)
	}
}

func TestConcurrentCashOuts(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	owner := f.onboardedOwner(t, "concurrent@example.com", 0, 1000)

	const (
		workers = 50
		amount  = 100
	)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		rejected  atomic.Int32
	)

	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()

			_, err := f.txUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
				OwnerID:       owner.ID,
				Kind:          domain.KindCashOut,
				Amount:        decimal.NewFromInt(amount),
				FeePercentage: ptr(decimal.Zero),
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrInsufficientFunds):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// 1000 cash covers exactly ten cash-outs of 100.
	if succeeded.Load() != 10 || rejected.Load() != workers-10 {
		t.Fatalf("expected 10 successes, got %d (rejected %d)", succeeded.Load(), rejected.Load())
	}

	stored, err := f.owners.GetByID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("get owner: %v", err)
	}
	if !stored.Balances().Cash.IsZero() || !stored.Balances().Electronic.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected final balances %+v", stored.Balances())
	}
}

func ptr[T any](v T) *T { return &v }
