package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/iho/gcashledger/internal/infrastructure/metrics"
)

// SQLSTATEs that mean the owner-row write lost a race and can be re-run.
const (
	pgErrSerializationFailure = "40001"
	pgErrDeadlock             = "40P01"
	pgErrLockNotAvailable     = "55P03" // lock_timeout fired on SELECT ... FOR UPDATE
)

// RetryPolicy bounds how often a ledger write is re-run.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryPolicy keeps every retry inside one engine transaction timeout.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      3,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     time.Second,
		MaxElapsedTime:  10 * time.Second,
	}
}

// Retrier implements usecase.Retrier for the transaction engine.
type Retrier struct {
	policy  RetryPolicy
	metrics *metrics.Metrics
}

// NewRetrier creates a retrier with DefaultRetryPolicy.
func NewRetrier() *Retrier {
	return NewRetrierWithPolicy(DefaultRetryPolicy())
}

// NewRetrierWithPolicy creates a retrier with an explicit policy.
func NewRetrierWithPolicy(policy RetryPolicy) *Retrier {
	return &Retrier{policy: policy}
}

// WithMetrics counts retries by SQLSTATE.
func (r *Retrier) WithMetrics(m *metrics.Metrics) *Retrier {
	r.metrics = m
	return r
}

// Retry runs operation, re-running it with exponential backoff while it
// fails with a lock or serialization conflict. Domain errors such as
// insufficient funds are returned on the first attempt.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.policy.InitialInterval
	b.MaxInterval = r.policy.MaxInterval
	b.MaxElapsedTime = r.policy.MaxElapsedTime

	attempt := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		code, retryable := retryableCode(err)
		if !retryable {
			return backoff.Permanent(err)
		}

		attempt++
		if attempt > r.policy.MaxRetries {
			return backoff.Permanent(err)
		}

		if r.metrics != nil {
			r.metrics.StorageRetries.WithLabelValues(code).Inc()
		}
		log.Ctx(ctx).Warn().
			Err(err).
			Str("sqlstate", code).
			Int("attempt", attempt).
			Msg("ledger write conflicted, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

func retryableCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}

	switch pgErr.Code {
	case pgErrSerializationFailure, pgErrDeadlock, pgErrLockNotAvailable:
		return pgErr.Code, true
	default:
		return pgErr.Code, false
	}
}
