package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	// LeaseTTL is how long a cycle keeps the lease. It is shorter than Interval so the
	// next tick can take it again, and longer than any realistic run.
	LeaseTTL = Interval - time.Hour
	lockKey  = "scheduler:lock"
)

// Lock is a lease on the daily cycle. A holder keeps it until the TTL expires, so
// replicas, restarts and manual triggers within the same day skip the run.
type Lock interface {
	// Acquire takes the lease. It reports false when someone else holds it.
	Acquire(ctx context.Context) (bool, error)
	// Release gives the lease up early.
	Release(ctx context.Context) error
}

// LockParams holds dependencies for NewLock, injected by Fx
type LockParams struct {
	fx.In

	Redis *redis.Client `optional:"true"`
}

// NewLock shares the lease through Redis when it is configured and keeps it in
// process otherwise.
func NewLock(params LockParams) (Lock, error) {
	if params.Redis == nil {
		return NewLocalLock(LeaseTTL), nil
	}

	lock, err := NewRedisLock(params.Redis, lockKey, LeaseTTL)
	if err != nil {
		return nil, err
	}

	return lock, nil
}

// redisStore defines the operations used by RedisLock.
type redisStore interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisLock implements Lock using Redis SETNX + TTL.
type RedisLock struct {
	client redisStore
	key    string
	ttl    time.Duration

	mu    sync.Mutex
	owner string
}

// NewRedisLock constructs a Redis-backed lock.
func NewRedisLock(client redisStore, key string, ttl time.Duration) (*RedisLock, error) {
	if client == nil {
		return nil, errors.New("redis client required for lock")
	}
	if key == "" {
		return nil, errors.New("lock key is required")
	}
	if ttl <= 0 {
		ttl = LeaseTTL
	}

	return &RedisLock{client: client, key: key, ttl: ttl}, nil
}

// Acquire tries to own the lock for the configured TTL.
func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	owner := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, owner, l.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "setnx")
	}
	if ok {
		l.mu.Lock()
		l.owner = owner
		l.mu.Unlock()
	}

	return ok, nil
}

// Release frees the lock only if this instance still owns it.
func (l *RedisLock) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.owner == "" {
		return nil
	}
	value, err := l.client.Get(ctx, l.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			l.owner = ""

			return nil
		}

		return errors.Wrap(err, "read lock owner")
	}
	if value != l.owner {
		l.owner = ""

		return nil
	}
	if err := l.client.Del(ctx, l.key).Err(); err != nil {
		return errors.Wrap(err, "delete lock")
	}
	l.owner = ""

	return nil
}

// localLock is a lease held in this process only.
type localLock struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	until time.Time
}

// NewLocalLock creates a process-local lease for single replica setups.
func NewLocalLock(ttl time.Duration) Lock {
	return &localLock{ttl: ttl, now: time.Now}
}

func (l *localLock) Acquire(context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Before(l.until) {
		return false, nil
	}
	l.until = now.Add(l.ttl)

	return true, nil
}

func (l *localLock) Release(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.until = time.Time{}

	return nil
}
