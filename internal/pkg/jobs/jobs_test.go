package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"training-booking-service/internal/pkg/lock"
	log_internal "training-booking-service/internal/pkg/log"

	"github.com/stretchr/testify/assert"
)

type fakeLocker struct {
	held bool
	runs int
}

func (f *fakeLocker) RunExclusive(ctx context.Context, name string, ttl time.Duration, fn func(ctx context.Context) error) error {
	if f.held {
		return lock.ErrHeld
	}
	f.runs++
	return fn(ctx)
}

func TestRun(t *testing.T) {
	t.Run("runs job under lock", func(t *testing.T) {
		locker := &fakeLocker{}
		r := NewRunner(locker, log_internal.Nop())

		called := false
		r.run("certificate_expiry", time.Second, func(ctx context.Context) error {
			called = true
			return nil
		})

		assert.True(t, called)
		assert.Equal(t, 1, locker.runs)
	})

	t.Run("skips when another replica holds the lock", func(t *testing.T) {
		r := NewRunner(&fakeLocker{held: true}, log_internal.Nop())

		called := false
		r.run("certificate_expiry", time.Second, func(ctx context.Context) error {
			called = true
			return errors.New("unreachable")
		})

		assert.False(t, called)
	})
}

func TestRegisterRejectsBadSpec(t *testing.T) {
	r := NewRunner(&fakeLocker{}, log_internal.Nop())
	err := r.Register("not a cron spec", "broken", time.Second, func(ctx context.Context) error { return nil })
	assert.Error(t, err)

	assert.NoError(t, r.Register("0 2 * * *", "certificate_expiry", time.Second, func(ctx context.Context) error { return nil }))
}
