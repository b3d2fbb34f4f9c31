// Package ratelimit provides an optional redis-backed advisory lock used to
// short-circuit duplicate admin submissions. The database transition guard
// remains the authority; losing redis only loses the fast path.
package ratelimit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Unlock releases a previously acquired lock.
type Unlock func(context.Context) error

// Locker hands out best-effort advisory locks.
type Locker interface {
	// TryLock attempts to take the lock without blocking. ok is false when
	// another holder owns the key.
	TryLock(ctx context.Context, key string, ttl time.Duration) (Unlock, bool, error)
}

// releaseScript deletes the key only when it still holds our token, so an
// expired lock reacquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) Locker {
	return &redisLocker{client: client}
}

func (l *redisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (Unlock, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	unlock := func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}
	return unlock, true, nil
}

type noopLocker struct{}

// NewNoopLocker returns a Locker that always grants the lock. Used when no
// redis address is configured.
func NewNoopLocker() Locker {
	return noopLocker{}
}

func (noopLocker) TryLock(context.Context, string, time.Duration) (Unlock, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}
