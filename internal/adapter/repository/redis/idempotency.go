package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// processingMarker holds a key while the first request with it is still
// writing to the ledger.
const processingMarker = "processing"

// claimScript claims KEYS[1] or returns what is already stored, in one round
// trip so two retries of the same cash-in cannot both see an empty slot.
// Reply: {1, ""} when claimed, {0, stored} otherwise.
var claimScript = redis.NewScript(`
if redis.call('SET', KEYS[1], ARGV[1], 'NX', 'PX', ARGV[2]) then
	return {1, ''}
end
return {0, redis.call('GET', KEYS[1])}
`)

// releaseScript deletes KEYS[1] only while it still holds the marker, so a
// late Release never discards a recorded response.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// IdempotencyStore backs the Idempotency-Key header on ledger writes.
type IdempotencyStore struct {
	client redis.Cmdable
	prefix string
}

func NewIdempotencyStore(client redis.Cmdable) *IdempotencyStore {
	return &IdempotencyStore{client: client, prefix: "gcash:idempotency:"}
}

func (s *IdempotencyStore) key(k string) string { return s.prefix + k }

// CheckAndSet claims key for a new request. When the key is taken it
// returns true with the stored value: the recorded response, or the
// processing marker while the first request is in flight.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	value := response
	if value == nil {
		value = []byte(processingMarker)
	}

	reply, err := claimScript.Run(ctx, s.client, []string{s.key(key)}, value, max(ttl.Milliseconds(), 1)).Slice()
	if err != nil {
		return false, nil, fmt.Errorf("claim idempotency key: %w", err)
	}
	if len(reply) != 2 {
		return false, nil, fmt.Errorf("claim idempotency key: unexpected reply %v", reply)
	}

	if claimed, _ := reply[0].(int64); claimed == 1 {
		return false, nil, nil
	}
	stored, _ := reply[1].(string)
	return true, []byte(stored), nil
}

// Update records the final response for replay.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), response, ttl).Err(); err != nil {
		return fmt.Errorf("store idempotent response: %w", err)
	}
	return nil
}

// Release frees a key whose request failed so the client may retry it.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, s.client, []string{s.key(key)}, processingMarker).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

func IsProcessing(value []byte) bool {
	return string(value) == processingMarker
}
