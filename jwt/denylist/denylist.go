package denylist

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	mapLock sync.Mutex
	_       Denylist = make(Map)
	_       Denylist = Redis{}
)

// A Denylist can mark token IDs as revoked and answer whether a given
// token ID is currently revoked.
//
// A Denylist ought treat an unknown or expired entry as not revoked.
type Denylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	Revoked(ctx context.Context, jti string) bool
}

// A Map stores jti, expiry pairs in process memory.
//
// Server restarts reset this map.
// Map ought not be used for multi-instance deployments.
type Map map[string]time.Time

// NewMap initializes a Map for use as an in-memory denylist.
func NewMap() Map { return make(Map) }

// Revoke marks jti revoked until the given time.
//
// For each call to Revoke, entries whose expiry has passed are evicted.
func (m Map) Revoke(ctx context.Context, jti string, until time.Time) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		mapLock.Lock()
		defer mapLock.Unlock()

		now := time.Now()
		for k, exp := range m {
			if exp.Before(now) {
				delete(m, k)
			}
		}

		m[jti] = until
		return nil
	}
}

// Revoked reports whether jti is revoked and its revocation has not lapsed.
func (m Map) Revoked(ctx context.Context, jti string) bool {
	if jti == "" {
		return false
	}

	select {
	case <-ctx.Done():
		return false
	default:
		mapLock.Lock()
		defer mapLock.Unlock()

		until, ok := m[jti]
		return ok && time.Now().Before(until)
	}
}

// A Commander is the slice of the Redis command surface the denylist
// issues. A *redis.Client satisfies it.
type Commander interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// A Redis connects to a Redis backend so revocations are visible to every
// instance sharing it.
type Redis struct {
	client Commander
}

// NewRedis constructs a Redis denylist with the options passed in.
func NewRedis(opts *redis.Options) Redis {
	return NewRedisWithClient(redis.NewClient(opts))
}

// NewRedisWithClient constructs a Redis denylist around an
// already-configured client.
func NewRedisWithClient(client Commander) Redis {
	return Redis{client: client}
}

// Revoke marks jti revoked until the given time. The entry expires from
// the backend on its own once that time passes.
func (r Redis) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	return r.client.Set(ctx, denyKey(jti), 1, ttl).Err()
}

// Revoked reports whether jti has an unexpired entry in the backend.
func (r Redis) Revoked(ctx context.Context, jti string) bool {
	if jti == "" {
		return false
	}

	select {
	case <-ctx.Done():
		return false
	default:
		n, err := r.client.Exists(ctx, denyKey(jti)).Result()
		return err == nil && n > 0
	}
}

func denyKey(jti string) string { return "denylist:" + jti }
