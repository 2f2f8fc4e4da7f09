package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking the owner row
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultBalanceCacheTTL is how long current balances stay cached
	DefaultBalanceCacheTTL = 5 * time.Minute

	// DefaultTrendWindow is the range used when a trend query has no start
	DefaultTrendWindow = 30 * 24 * time.Hour

	// DefaultLowBalanceThreshold applies to both pools unless configured
	DefaultLowBalanceThreshold = "1000"

	// MaxExportEntries caps the number of entries rendered into an export
	MaxExportEntries = 1000
)

func balanceCacheKey(ownerID string) string {
	return "balances:" + ownerID
}
