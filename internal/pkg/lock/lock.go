package lock

import (
	"context"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ErrHeld means another replica owns the lock.
var ErrHeld = goerrors.New("lock held by another owner")

type Locker interface {
	// RunExclusive runs fn only if the named lock could be taken at once.
	RunExclusive(ctx context.Context, name string, ttl time.Duration, fn func(ctx context.Context) error) error
}

type redisLocker struct {
	rs  *redsync.Redsync
	log *otelzap.Logger
}

func New(client *redis.Client, log *otelzap.Logger) Locker {
	return &redisLocker{
		rs:  redsync.New(goredis.NewPool(client)),
		log: log,
	}
}

func (l *redisLocker) RunExclusive(ctx context.Context, name string, ttl time.Duration, fn func(ctx context.Context) error) error {
	mutex := l.rs.NewMutex(name, redsync.WithExpiry(ttl), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		var takenPtr *redsync.ErrTaken
		var taken redsync.ErrTaken
		if goerrors.Is(err, redsync.ErrFailed) || goerrors.As(err, &takenPtr) || goerrors.As(err, &taken) {
			return ErrHeld
		}
		return fmt.Errorf("acquire lock %s: %w", name, err)
	}

	defer func() {
		if ok, err := mutex.UnlockContext(ctx); !ok || err != nil {
			l.log.Ctx(ctx).Warn("error release lock", zap.String("lock", name), zap.Error(err))
		}
	}()

	return fn(ctx)
}
