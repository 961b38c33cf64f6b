package scheduler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"training-booking-service/config"
	"training-booking-service/internal/pkg/helpers"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	TypeSetPaymentExpired = "set_payment_expired"
)

type PaymentExpiration struct {
	BookingReference string `json:"booking_reference" validate:"required"`
}

// Enqueuer schedules delayed work for a booking.
type Enqueuer interface {
	EnqueuePaymentExpiry(ctx context.Context, bookingReference string, at time.Time) (string, error)
}

type Scheduler struct {
	Log    *otelzap.Logger
	Client *asynq.Client
}

func (s *Scheduler) StartMonitoring(cfg *config.RedisConfig, port string) {
	ctx := context.Background()
	redisAddr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	h := asynqmon.New(asynqmon.Options{
		RootPath:     "/monitoring",
		RedisConnOpt: asynq.RedisClientOpt{Addr: redisAddr, Password: cfg.Password, DB: cfg.DB},
	})

	mux := http.NewServeMux()
	// the trailing slash is needed by net/http.ServeMux
	mux.Handle(h.RootPath()+"/", h)

	err := http.ListenAndServe(fmt.Sprintf(":%s", port), mux)
	s.Log.Ctx(ctx).Error("error start monitoring scheduler", zap.Error(err))
}

func (s *Scheduler) InitClient(cfg *config.RedisConfig) *asynq.Client {
	s.Client = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return s.Client
}

func (s *Scheduler) StartHandler(cfg *config.RedisConfig, concurrency int, taskTypes []string, handlerFunc []func(ctx context.Context, t *asynq.Task) error) {
	ctx := context.Background()
	redisAddr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr, Password: cfg.Password, DB: cfg.DB},
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 10,
			},
		},
	)
	mux := asynq.NewServeMux()

	for i, taskType := range taskTypes {
		mux = s.registerHandlers(mux, taskType, handlerFunc[i])
	}

	if err := srv.Run(mux); err != nil {
		s.Log.Ctx(ctx).Error("error start handler scheduler", zap.Error(err))
	}
}

func (s *Scheduler) registerHandlers(mux *asynq.ServeMux, typeTask string, handlerFunc func(ctx context.Context, t *asynq.Task) error) *asynq.ServeMux {
	mux.HandleFunc(typeTask, handlerFunc)
	return mux
}

// EnqueuePaymentExpiry schedules the expiry check of an unpaid booking. The
// task id is derived from the reference so a retried booking request cannot
// schedule it twice.
func (s *Scheduler) EnqueuePaymentExpiry(ctx context.Context, bookingReference string, at time.Time) (string, error) {
	payload, err := json.Marshal(PaymentExpiration{BookingReference: bookingReference})
	if err != nil {
		return "", err
	}

	info, err := s.Client.EnqueueContext(ctx,
		asynq.NewTask(TypeSetPaymentExpired, payload),
		asynq.ProcessIn(helpers.DurationCalculation(at)),
		asynq.TaskID(fmt.Sprintf("%s:%s", TypeSetPaymentExpired, bookingReference)),
		asynq.MaxRetry(5),
	)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}
