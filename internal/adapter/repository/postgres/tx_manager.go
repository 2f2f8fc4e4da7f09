package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gcashledger/internal/infrastructure/postgres/generated"
	"github.com/iho/gcashledger/internal/usecase"
)

type beginner interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager opens the transactions the ledger engine runs its
// read-lock-write sequences in. A positive lockTimeout caps how long
// SELECT ... FOR UPDATE waits on a busy owner row; the resulting 55P03
// is picked up by the Retrier.
type TxManager struct {
	db          beginner
	lockTimeout time.Duration
}

func NewTxManager(pool *pgxpool.Pool, lockTimeout time.Duration) *TxManager {
	return newTxManagerWithPool(pool, lockTimeout)
}

func newTxManagerWithPool(db beginner, lockTimeout time.Duration) *TxManager {
	return &TxManager{db: db, lockTimeout: lockTimeout}
}

// Begin starts a transaction and applies the lock timeout to it.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	pgTx, err := m.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin ledger transaction: %w", err)
	}

	if m.lockTimeout > 0 {
		// SET does not take bind parameters.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", m.lockTimeout.Milliseconds())
		if _, err := pgTx.Exec(ctx, stmt); err != nil {
			_ = pgTx.Rollback(ctx)
			return nil, fmt.Errorf("set lock timeout: %w", err)
		}
	}

	return &Tx{pgTx: pgTx}, nil
}

// Tx is the usecase.Transaction handed to repositories.
type Tx struct {
	pgTx pgx.Tx
}

func (t *Tx) Commit(ctx context.Context) error {
	return t.pgTx.Commit(ctx)
}

// Rollback is safe to defer; after Commit it does nothing.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.pgTx.Rollback(ctx)
}

// Queries returns the generated queries bound to this transaction.
func (t *Tx) Queries() *generated.Queries {
	return generated.New(t.pgTx)
}

func txQueries(tx usecase.Transaction) *generated.Queries {
	return tx.(*Tx).Queries()
}
