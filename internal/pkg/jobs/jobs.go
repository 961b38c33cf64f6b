package jobs

import (
	"context"
	goerrors "errors"
	"fmt"
	"time"

	"training-booking-service/internal/pkg/lock"

	"github.com/robfig/cron/v3"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Runner runs periodic jobs. Every replica schedules them; the distributed
// lock makes sure only one of them does the work per tick.
type Runner struct {
	cron   *cron.Cron
	locker lock.Locker
	log    *otelzap.Logger
}

func NewRunner(locker lock.Locker, log *otelzap.Logger) *Runner {
	return &Runner{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		locker: locker,
		log:    log,
	}
}

func (r *Runner) Register(spec, name string, timeout time.Duration, job func(ctx context.Context) error) error {
	_, err := r.cron.AddFunc(spec, func() {
		r.run(name, timeout, job)
	})
	if err != nil {
		return fmt.Errorf("register job %s: %w", name, err)
	}
	return nil
}

func (r *Runner) run(name string, timeout time.Duration, job func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	err := r.locker.RunExclusive(ctx, "job:"+name, timeout, job)
	switch {
	case goerrors.Is(err, lock.ErrHeld):
		r.log.Ctx(ctx).Info("job skipped, running elsewhere", zap.String("job", name))
	case err != nil:
		r.log.Ctx(ctx).Error(fmt.Sprintf("error run job: %v", err), zap.String("job", name))
	default:
		r.log.Ctx(ctx).Info("job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
	}
}

func (r *Runner) Start() {
	r.cron.Start()
}

func (r *Runner) Stop() context.Context {
	return r.cron.Stop()
}
