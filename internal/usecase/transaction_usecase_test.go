package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
	"github.com/iho/gcashledger/internal/usecase/mocks"
)

type ledgerFixture struct {
	owners    *mocks.MockOwnerRepository
	entries   *mocks.MockLedgerEntryRepository
	history   *mocks.MockBalanceHistoryRepository
	profits   *mocks.MockProfitRepository
	cats      *mocks.MockCategoryRepository
	outbox    *mocks.MockOutboxRepository
	cache     *mocks.MockCache
	txManager *mocks.MockTransactionManager
	uc        *usecase.TransactionUseCase
}

func newLedgerFixture(t *testing.T, electronic, cash string) *ledgerFixture {
	t.Helper()

	f := &ledgerFixture{
		owners:  mocks.NewMockOwnerRepository(),
		entries: mocks.NewMockLedgerEntryRepository(),
		history: mocks.NewMockBalanceHistoryRepository(),
		profits: mocks.NewMockProfitRepository(),
		cats:    mocks.NewMockCategoryRepository(),
		outbox:  mocks.NewMockOutboxRepository(),
		cache:   mocks.NewMockCache(),
	}
	f.txManager = mocks.NewMockTransactionManager(f.owners, f.entries, f.history, f.profits, f.outbox)

	f.owners.Seed(&domain.Owner{
		ID:                   "owner-1",
		Email:                "agent@example.com",
		ElectronicBalance:    decimal.RequireFromString(electronic),
		CashBalance:          decimal.RequireFromString(cash),
		DefaultFeePercentage: decimal.NewFromInt(2),
		Onboarded:            true,
	})

	f.uc = usecase.NewTransactionUseCase(
		f.txManager, f.owners, f.entries, f.history, f.profits, f.cats, f.outbox,
		f.cache, &mocks.MockRetrier{}, mocks.NewMockIDGenerator(), nil,
	)
	return f
}

func (f *ledgerFixture) balances(t *testing.T) domain.Balances {
	t.Helper()
	owner, err := f.owners.GetByID(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("get owner: %v", err)
	}
	return owner.Balances()
}

func (f *ledgerFixture) profit(t *testing.T) *domain.ProfitAggregate {
	t.Helper()
	agg, err := f.profits.GetOrCreate(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("get profit: %v", err)
	}
	return agg
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", name, got.StringFixed(2), want)
	}
}

func TestTransactionUseCase_CreateTransaction(t *testing.T) {
	tests := []struct {
		name           string
		electronic     string
		cash           string
		input          usecase.CreateTransactionInput
		wantErr        error
		wantFee        string
		wantElectronic string
		wantCash       string
	}{
		{
			name:       "cash in moves electronic out and keeps fee as cash",
			electronic: "1000", cash: "500",
			input: usecase.CreateTransactionInput{
				Kind: domain.KindCashIn, Amount: dec("1000"), FeePercentage: ptr(dec("2")),
			},
			wantFee: "20.00", wantElectronic: "0.00", wantCash: "520.00",
		},
		{
			name:       "cash out takes electronic in and pays out cash net of fee",
			electronic: "0", cash: "520",
			input: usecase.CreateTransactionInput{
				Kind: domain.KindCashOut, Amount: dec("300"), FeePercentage: ptr(dec("2")),
			},
			wantFee: "6.00", wantElectronic: "300.00", wantCash: "226.00",
		},
		{
			name:       "owner default percentage applies when none given",
			electronic: "1000", cash: "0",
			input: usecase.CreateTransactionInput{
				Kind: domain.KindCashIn, Amount: dec("100"),
			},
			wantFee: "2.00", wantElectronic: "900.00", wantCash: "2.00",
		},
		{
			name:       "tiered mode uses the tier table",
			electronic: "0", cash: "10000",
			input: usecase.CreateTransactionInput{
				Kind: domain.KindCashOut, Amount: dec("6000"), FeeMode: usecase.FeeModeTiered,
			},
			wantFee: "120.00", wantElectronic: "6000.00", wantCash: "4120.00",
		},
		{
			name:       "fee rounds half up",
			electronic: "100", cash: "0",
			input: usecase.CreateTransactionInput{
				Kind: domain.KindCashIn, Amount: dec("10.25"), FeePercentage: ptr(dec("2")),
			},
			wantFee: "0.21", wantElectronic: "89.75", wantCash: "0.21",
		},
		{
			name:       "insufficient electronic balance",
			electronic: "4000", cash: "0",
			input: usecase.CreateTransactionInput{
				Kind: domain.KindCashIn, Amount: dec("5000"),
			},
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name:       "zero amount",
			electronic: "100", cash: "100",
			input: usecase.CreateTransactionInput{
				Kind: domain.KindCashIn, Amount: decimal.Zero,
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:       "percentage above 100",
			electronic: "100", cash: "100",
			input: usecase.CreateTransactionInput{
				Kind: domain.KindCashIn, Amount: dec("10"), FeePercentage: ptr(dec("100.01")),
			},
			wantErr: domain.ErrInvalidPercentage,
		},
		{
			name:       "unknown kind",
			electronic: "100", cash: "100",
			input: usecase.CreateTransactionInput{
				Kind: domain.TransactionKind("transfer"), Amount: dec("10"),
			},
			wantErr: domain.ErrInvalidKind,
		},
		{
			name:       "unknown category",
			electronic: "100", cash: "100",
			input: usecase.CreateTransactionInput{
				Kind: domain.KindCashIn, Amount: dec("10"), CategoryID: ptr("missing"),
			},
			wantErr: domain.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t, tt.electronic, tt.cash)
			tt.input.OwnerID = "owner-1"

			entry, err := f.uc.CreateTransaction(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				if f.entries.Count() != 0 || len(f.history.Records()) != 0 || len(f.outbox.Events()) != 0 {
					t.Error("rejected transaction must not write any record")
				}
				got := f.balances(t)
				assertMoney(t, "electronic", got.Electronic, tt.electronic)
				assertMoney(t, "cash", got.Cash, tt.cash)
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertMoney(t, "fee", entry.FeeAmount, tt.wantFee)
			assertMoney(t, "entry electronic after", entry.ElectronicBalanceAfter, tt.wantElectronic)
			assertMoney(t, "entry cash after", entry.CashBalanceAfter, tt.wantCash)
			assertMoney(t, "entry electronic before", entry.ElectronicBalanceBefore, tt.electronic)

			got := f.balances(t)
			assertMoney(t, "owner electronic", got.Electronic, tt.wantElectronic)
			assertMoney(t, "owner cash", got.Cash, tt.wantCash)

			profit := f.profit(t)
			assertMoney(t, "total profit", profit.TotalProfit, tt.wantFee)
			if profit.TransactionCount != 1 {
				t.Errorf("transaction count = %d, want 1", profit.TransactionCount)
			}

			records := f.history.Records()
			if len(records) != 3 {
				t.Fatalf("expected 3 history records, got %d", len(records))
			}
			for _, r := range records {
				if r.EntryID == nil || *r.EntryID != entry.ID {
					t.Errorf("history record %s not linked to entry", r.ID)
				}
				if !r.ChangeAmount.Equal(r.AmountAfter.Sub(r.AmountBefore)) {
					t.Errorf("history record %s change mismatch", r.ID)
				}
			}

			events := f.outbox.Events()
			if len(events) != 1 || events[0].EventType != domain.EventTypeEntryCreated {
				t.Errorf("expected one %s event, got %+v", domain.EventTypeEntryCreated, events)
			}
		})
	}
}

func TestTransactionUseCase_SequenceAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, "1000", "500")

	cashIn, err := f.uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
		OwnerID: "owner-1", Kind: domain.KindCashIn, Amount: dec("1000"), FeePercentage: ptr(dec("2")),
	})
	if err != nil {
		t.Fatalf("cash in: %v", err)
	}

	cashOut, err := f.uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
		OwnerID: "owner-1", Kind: domain.KindCashOut, Amount: dec("300"), FeePercentage: ptr(dec("2")),
	})
	if err != nil {
		t.Fatalf("cash out: %v", err)
	}

	assertMoney(t, "cash out fee", cashOut.FeeAmount, "6.00")
	assertMoney(t, "cash out electronic before", cashOut.ElectronicBalanceBefore, "0")
	assertMoney(t, "cash out cash before", cashOut.CashBalanceBefore, "520")

	profit := f.profit(t)
	assertMoney(t, "total profit", profit.TotalProfit, "26.00")
	assertMoney(t, "profit from cash in", profit.ProfitFromCashIn, "20.00")
	assertMoney(t, "profit from cash out", profit.ProfitFromCashOut, "6.00")

	if err := f.uc.DeleteTransaction(ctx, "owner-1", cashIn.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// The deleted entry's own snapshot is restored.
	got := f.balances(t)
	assertMoney(t, "electronic", got.Electronic, "1000.00")
	assertMoney(t, "cash", got.Cash, "500.00")

	profit = f.profit(t)
	assertMoney(t, "total profit after delete", profit.TotalProfit, "6.00")
	assertMoney(t, "profit from cash in after delete", profit.ProfitFromCashIn, "0")
	if profit.TransactionCount != 1 {
		t.Errorf("transaction count = %d, want 1", profit.TransactionCount)
	}
	if !profit.IsBalanced() {
		t.Error("aggregate must stay balanced")
	}

	for _, r := range f.history.Records() {
		if r.EntryID != nil && *r.EntryID == cashIn.ID {
			t.Errorf("history record %s of deleted entry survived", r.ID)
		}
	}
	if len(f.history.Records()) != 3 {
		t.Errorf("expected 3 remaining history records, got %d", len(f.history.Records()))
	}

	if _, err := f.entries.GetByID(ctx, cashIn.ID); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Errorf("expected deleted entry to be gone, got %v", err)
	}
}

func TestTransactionUseCase_CreateThenDeleteRestoresState(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, "2500.50", "730.25")

	before := f.balances(t)

	entry, err := f.uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
		OwnerID: "owner-1", Kind: domain.KindCashOut, Amount: dec("412.37"), FeePercentage: ptr(dec("1.75")),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.uc.DeleteTransaction(ctx, "owner-1", entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	after := f.balances(t)
	if !after.Electronic.Equal(before.Electronic) || !after.Cash.Equal(before.Cash) {
		t.Errorf("balances not restored: before %+v after %+v", before, after)
	}

	profit := f.profit(t)
	if !profit.TotalProfit.IsZero() || profit.TransactionCount != 0 {
		t.Errorf("profit not restored: %+v", profit)
	}
	if len(f.history.Records()) != 0 {
		t.Errorf("expected no history, got %d records", len(f.history.Records()))
	}

	events := f.outbox.Events()
	if len(events) != 2 || events[1].EventType != domain.EventTypeEntryDeleted {
		t.Errorf("expected created and deleted events, got %d", len(events))
	}
}

func TestTransactionUseCase_UpdateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("settles again against the original snapshot", func(t *testing.T) {
		f := newLedgerFixture(t, "1000", "500")

		entry, err := f.uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
			OwnerID: "owner-1", Kind: domain.KindCashIn, Amount: dec("400"), FeePercentage: ptr(dec("2")),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		updated, err := f.uc.UpdateTransaction(ctx, usecase.UpdateTransactionInput{
			OwnerID: "owner-1", EntryID: entry.ID, Amount: ptr(dec("500")),
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}

		assertMoney(t, "fee", updated.FeeAmount, "10.00")
		assertMoney(t, "electronic before", updated.ElectronicBalanceBefore, "1000")
		got := f.balances(t)
		assertMoney(t, "electronic", got.Electronic, "500.00")
		assertMoney(t, "cash", got.Cash, "510.00")

		profit := f.profit(t)
		assertMoney(t, "total profit", profit.TotalProfit, "10.00")
		if profit.TransactionCount != 1 {
			t.Errorf("transaction count = %d, want 1", profit.TransactionCount)
		}
		if len(f.history.Records()) != 3 {
			t.Errorf("expected 3 history records, got %d", len(f.history.Records()))
		}
	})

	t.Run("empty update is idempotent", func(t *testing.T) {
		f := newLedgerFixture(t, "1000", "500")

		entry, err := f.uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
			OwnerID: "owner-1", Kind: domain.KindCashOut, Amount: dec("120"), FeePercentage: ptr(dec("3")),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		first := f.balances(t)

		for i := 0; i < 3; i++ {
			if _, err := f.uc.UpdateTransaction(ctx, usecase.UpdateTransactionInput{
				OwnerID: "owner-1", EntryID: entry.ID,
			}); err != nil {
				t.Fatalf("update %d: %v", i, err)
			}
		}

		got := f.balances(t)
		if !got.Electronic.Equal(first.Electronic) || !got.Cash.Equal(first.Cash) {
			t.Errorf("balances drifted: %+v -> %+v", first, got)
		}
		profit := f.profit(t)
		assertMoney(t, "total profit", profit.TotalProfit, "3.60")
		if profit.TransactionCount != 1 {
			t.Errorf("transaction count = %d, want 1", profit.TransactionCount)
		}
	})

	t.Run("kind change moves profit between buckets", func(t *testing.T) {
		f := newLedgerFixture(t, "1000", "1000")

		entry, err := f.uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
			OwnerID: "owner-1", Kind: domain.KindCashIn, Amount: dec("100"), FeePercentage: ptr(dec("2")),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		kind := domain.KindCashOut
		if _, err := f.uc.UpdateTransaction(ctx, usecase.UpdateTransactionInput{
			OwnerID: "owner-1", EntryID: entry.ID, Kind: &kind,
		}); err != nil {
			t.Fatalf("update: %v", err)
		}

		profit := f.profit(t)
		assertMoney(t, "profit from cash in", profit.ProfitFromCashIn, "0")
		assertMoney(t, "profit from cash out", profit.ProfitFromCashOut, "2.00")
		got := f.balances(t)
		assertMoney(t, "electronic", got.Electronic, "1100.00")
		assertMoney(t, "cash", got.Cash, "902.00")
	})

	t.Run("insufficient funds rolls back the reversal", func(t *testing.T) {
		f := newLedgerFixture(t, "1000", "500")

		entry, err := f.uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
			OwnerID: "owner-1", Kind: domain.KindCashIn, Amount: dec("100"), FeePercentage: ptr(dec("2")),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		saved := f.balances(t)

		_, err = f.uc.UpdateTransaction(ctx, usecase.UpdateTransactionInput{
			OwnerID: "owner-1", EntryID: entry.ID, Amount: ptr(dec("1500")),
		})
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected insufficient funds, got %v", err)
		}

		got := f.balances(t)
		if !got.Electronic.Equal(saved.Electronic) || !got.Cash.Equal(saved.Cash) {
			t.Errorf("balances changed on failed update: %+v -> %+v", saved, got)
		}
		if len(f.history.Records()) != 3 {
			t.Errorf("history changed on failed update: %d records", len(f.history.Records()))
		}
		stored, _ := f.entries.GetByID(ctx, entry.ID)
		assertMoney(t, "stored amount", stored.Amount, "100")
	})

	t.Run("other owner's entry is not found", func(t *testing.T) {
		f := newLedgerFixture(t, "1000", "500")
		f.owners.Seed(&domain.Owner{ID: "owner-2", Email: "other@example.com", Onboarded: true})

		entry, err := f.uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
			OwnerID: "owner-1", Kind: domain.KindCashIn, Amount: dec("100"),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		_, err = f.uc.UpdateTransaction(ctx, usecase.UpdateTransactionInput{
			OwnerID: "owner-2", EntryID: entry.ID, Amount: ptr(dec("50")),
		})
		if !errors.Is(err, domain.ErrEntryNotFound) {
			t.Errorf("expected entry not found, got %v", err)
		}
	})
}

func TestTransactionUseCase_DeleteMissingHistoryIsInconsistent(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, "1000", "500")

	entry, err := f.uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
		OwnerID: "owner-1", Kind: domain.KindCashIn, Amount: dec("100"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	saved := f.balances(t)

	f.history.DeleteByEntryFunc = func(context.Context, usecase.Transaction, string) (int64, error) {
		return 0, nil
	}

	err = f.uc.DeleteTransaction(ctx, "owner-1", entry.ID)
	if !errors.Is(err, domain.ErrInconsistentState) {
		t.Fatalf("expected inconsistent state, got %v", err)
	}

	got := f.balances(t)
	if !got.Electronic.Equal(saved.Electronic) || !got.Cash.Equal(saved.Cash) {
		t.Errorf("balances changed on aborted delete: %+v -> %+v", saved, got)
	}
	if f.entries.Count() != 1 {
		t.Error("entry must survive an aborted delete")
	}
}

func TestTransactionUseCase_RequiresOnboarding(t *testing.T) {
	f := newLedgerFixture(t, "0", "0")
	f.owners.Seed(&domain.Owner{ID: "owner-1", Email: "agent@example.com"})

	_, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID: "owner-1", Kind: domain.KindCashOut, Amount: dec("10"),
	})
	if !errors.Is(err, domain.ErrNotOnboarded) {
		t.Errorf("expected not onboarded, got %v", err)
	}
}

func TestTransactionUseCase_InvalidatesBalanceCache(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, "1000", "500")
	_ = f.cache.Set(ctx, "balances:owner-1", []byte(`{"electronic":"1","cash":"1"}`), time.Minute)

	if _, err := f.uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
		OwnerID: "owner-1", Kind: domain.KindCashIn, Amount: dec("10"),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	data, _ := f.cache.Get(ctx, "balances:owner-1")
	if data != nil {
		t.Error("expected cached balances to be evicted")
	}
	if gen, _ := f.cache.Get(ctx, "balance-gen:owner-1"); len(gen) == 0 {
		t.Error("expected balance generation to be bumped")
	}
}

func TestTransactionUseCase_RetriesThroughRetrier(t *testing.T) {
	f := newLedgerFixture(t, "1000", "500")

	attempts := 0
	retrier := &mocks.MockRetrier{
		RetryFunc: func(ctx context.Context, op func() error) error {
			var err error
			for i := 0; i < 3; i++ {
				attempts++
				if err = op(); err == nil {
					return nil
				}
			}
			return err
		},
	}

	failures := 1
	f.entries.CreateFunc = func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
		if failures > 0 {
			failures--
			return errors.New("deadlock detected")
		}
		f.entries.CreateFunc = nil
		return f.entries.Create(ctx, tx, entry)
	}

	uc := usecase.NewTransactionUseCase(
		f.txManager, f.owners, f.entries, f.history, f.profits, f.cats, f.outbox,
		nil, retrier, mocks.NewMockIDGenerator(), nil,
	)

	if _, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		OwnerID: "owner-1", Kind: domain.KindCashIn, Amount: dec("10"),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if f.txManager.Committed != 1 {
		t.Errorf("committed = %d, want 1", f.txManager.Committed)
	}
}

func ptr[T any](v T) *T {
	return &v
}
