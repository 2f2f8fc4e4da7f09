package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"
)

// balanceGenerationTTL bounds how long a generation marker lives. Cached
// balances never outlive it, so an expired marker cannot revive a stale
// entry.
const balanceGenerationTTL = 24 * time.Hour

func balanceGenerationKey(ownerID string) string {
	return "balance-gen:" + ownerID
}

// balanceGeneration returns the owner's current cache generation. An owner
// whose balances never changed through this process has the empty generation.
func balanceGeneration(ctx context.Context, cache Cache, ownerID string) (string, error) {
	data, err := cache.Get(ctx, balanceGenerationKey(ownerID))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// bumpBalanceGeneration runs after a balance-changing commit. Readers tag
// cached balances with the generation they saw before reading the owner, so
// a read that raced the commit is stored under the old generation and is
// never served.
func bumpBalanceGeneration(ctx context.Context, cache Cache, ownerID string) error {
	gen := strconv.FormatInt(time.Now().UnixNano(), 10)
	setErr := cache.Set(ctx, balanceGenerationKey(ownerID), []byte(gen), balanceGenerationTTL)
	delErr := cache.Delete(ctx, balanceCacheKey(ownerID))
	return errors.Join(setErr, delErr)
}
