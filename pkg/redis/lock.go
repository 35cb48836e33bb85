package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another owner holds the lock
var ErrLockHeld = errors.New("lock is held by another owner")

// unlockScript deletes the lock only when it still holds our token
var unlockScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

// JobLocker is a gocron.Locker that elects a single runner per job execution
// across every instance sharing the Redis database.
type JobLocker struct {
	client *Client
	ttl    time.Duration
}

var _ gocron.Locker = (*JobLocker)(nil)

// NewJobLocker creates a locker whose locks expire after ttl when never released
func NewJobLocker(client *Client, ttl time.Duration) *JobLocker {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &JobLocker{client: client, ttl: ttl}
}

// Lock acquires the lock for key without retrying
func (l *JobLocker) Lock(ctx context.Context, key string) (gocron.Lock, error) {
	lockKey := l.client.Key("lock", key)
	token := uuid.NewString()

	acquired, err := l.client.GetClient().SetNX(ctx, lockKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return nil, ErrLockHeld
	}

	return &jobLock{client: l.client, key: lockKey, token: token}, nil
}

type jobLock struct {
	client *Client
	key    string
	token  string
}

// Unlock releases the lock if it was not taken over after expiring
func (l *jobLock) Unlock(ctx context.Context) error {
	result, err := unlockScript.Run(ctx, l.client.GetClient(), []string{l.key}, l.token).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result == 0 {
		return ErrLockHeld
	}
	return nil
}
