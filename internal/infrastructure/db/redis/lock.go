package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
else
    return 0
end
`)

// Locker hands out short-lived exclusive locks backed by Redis.
// Key format: lock:<name>
type Locker struct {
	client *redis.Client
}

// NewLocker creates a Locker wrapping the given Redis client.
func NewLocker(client *redis.Client) *Locker {
	return &Locker{client: client}
}

// TryLock attempts to take the named lock for ttl. ok is false when another
// owner holds it. The returned unlock releases the lock only if it has not
// expired and been taken over in the meantime.
func (l *Locker) TryLock(ctx context.Context, name string, ttl time.Duration) (unlock func(context.Context) error, ok bool, err error) {
	key := l.key(name)
	token := uuid.NewString()

	ok, err = l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("lock %s: %w", name, err)
	}
	if !ok {
		return nil, false, nil
	}

	unlock = func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("unlock %s: %w", name, err)
		}
		return nil
	}
	return unlock, true, nil
}

func (l *Locker) key(name string) string {
	return "lock:" + name
}
