package cache

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Sentinel comparison
	"strconv"       // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache is a JSON value cache keyed by string. Every key carries a version
// that Invalidate bumps, so a fill computed before an invalidation can be
// refused instead of overwriting it with stale data.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Version reads the key's current version; call it before loading the value
	Version(ctx context.Context, key string) (int64, error)
	// SetIfVersion stores value only if the key is still at version
	SetIfVersion(ctx context.Context, key string, version int64, value any, ttl time.Duration) (bool, error)
	// Invalidate drops the keys and bumps their versions
	Invalidate(ctx context.Context, keys ...string) error
}

// WalletKey is the cache key for a wallet looked up by id
func WalletKey(walletID uint) string {
	return "wallet:id:" + strconv.FormatUint(uint64(walletID), 10)
}

// WalletUserKey is the cache key for a wallet looked up by owner
func WalletUserKey(userID uint) string {
	return "wallet:user:" + strconv.FormatUint(uint64(userID), 10)
}

// Redis stores values in Redis
type Redis struct {
	rdb *redis.Client
}

// NewRedis wraps a connected client
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

// Get retrieves a value from Redis and unmarshals it into dest
func (r *Redis) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := r.rdb.Get(ctx, key).Bytes() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal(val, dest) // Unmarshal JSON into dest
}

// versionKey holds the version counter of key. It never expires: a counter
// that disappeared and restarted could repeat a version a reader still holds.
func versionKey(key string) string {
	return key + ":v"
}

// Version reads the key's version, zero when it was never invalidated
func (r *Redis) Version(ctx context.Context, key string) (int64, error) {
	v, err := r.rdb.Get(ctx, versionKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil // Never invalidated
	}
	return v, err
}

// setIfVersion compares and sets atomically on the server.
// KEYS: value key, version key. ARGV: expected version, payload, ttl in ms.
var setIfVersion = redis.NewScript(`
local current = redis.call("GET", KEYS[2]) or "0"
if current ~= ARGV[1] then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call("SET", KEYS[1], ARGV[2], "PX", ttl)
else
	redis.call("SET", KEYS[1], ARGV[2])
end
return 1
`)

// SetIfVersion marshals value and stores it unless the key was invalidated
// after version was read
func (r *Redis) SetIfVersion(ctx context.Context, key string, version int64, value any, ttl time.Duration) (bool, error) {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return false, err // Return error if marshaling fails
	}
	args := []any{strconv.FormatInt(version, 10), b, ttl.Milliseconds()}
	stored, err := setIfVersion.Run(ctx, r.rdb, []string{key, versionKey(key)}, args...).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// Invalidate deletes keys from Redis and bumps their versions in one MULTI
func (r *Redis) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...) // Drop cached values
		for _, k := range keys {
			pipe.Incr(ctx, versionKey(k)) // Refuse fills that started earlier
		}
		return nil
	})
	return err
}

// Noop never stores anything; used when REDIS_ADDR is unset
type Noop struct{}

// Get always misses
func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

// Version is always zero
func (Noop) Version(context.Context, string) (int64, error) { return 0, nil }

// SetIfVersion discards the value
func (Noop) SetIfVersion(context.Context, string, int64, any, time.Duration) (bool, error) {
	return false, nil
}

// Invalidate does nothing
func (Noop) Invalidate(context.Context, ...string) error { return nil }
