package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"

	"github.com/iho/gcashledger/internal/usecase"
)

var (
	_ usecase.Cache            = (*Cache)(nil)
	_ usecase.IdempotencyStore = (*IdempotencyStore)(nil)
)

// newLedgerRedis starts an in-memory Redis. Retries are off so a stopped
// server fails the call immediately.
func newLedgerRedis(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}
