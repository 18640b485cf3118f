package seed

import (
	"context" // Redis operations
	"errors"  // Sentinel errors
	"sync"    // In-process lock
	"time"    // Lock expiry

	"github.com/google/uuid"       // Lock ownership tokens
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// LockKey is the Redis key guarding seed runs
const LockKey = "dashboard:seed:lock"

// ErrSeedInProgress is returned when another seed holds the lock
var ErrSeedInProgress = errors.New("seed already in progress")

// ReleaseFunc gives a held lock back
type ReleaseFunc func(ctx context.Context) error

// Locker grants exclusive access to the collection for a seed run
type Locker interface {
	Acquire(ctx context.Context) (ReleaseFunc, error)
}

// LocalLocker serializes seeds within one process
type LocalLocker struct {
	mu sync.Mutex
}

func (l *LocalLocker) Acquire(ctx context.Context) (ReleaseFunc, error) {
	if !l.mu.TryLock() {
		return nil, ErrSeedInProgress
	}
	return func(context.Context) error {
		l.mu.Unlock()
		return nil
	}, nil
}

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extendScript pushes the expiry back only while the key still holds our token
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker serializes seeds across every server sharing a Redis.
// The key is renewed every ttl/3 while held, so a slow replace keeps it.
type RedisLocker struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisLocker creates a lock stored under key that expires after ttl
func NewRedisLocker(rdb *redis.Client, key string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{rdb: rdb, key: key, ttl: ttl}
}

func (l *RedisLocker) Acquire(ctx context.Context) (ReleaseFunc, error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result() // Set only if absent
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSeedInProgress
	}
	stop := keepAlive(l.ttl/3, func(ctx context.Context) error {
		return extendScript.Run(ctx, l.rdb, []string{l.key}, token, l.ttl.Milliseconds()).Err()
	})
	return func(ctx context.Context) error {
		stop()
		return releaseScript.Run(ctx, l.rdb, []string{l.key}, token).Err()
	}, nil
}

// keepAlive calls extend every interval until the returned stop func is called.
// stop waits for the renewal goroutine to exit.
func keepAlive(interval time.Duration, extend func(context.Context) error) (stop func()) {
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := extend(ctx); err != nil && ctx.Err() == nil {
					logrus.WithError(err).Warn("Failed to extend seed lock")
				}
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
