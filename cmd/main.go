package main

import (
	"context"
	"log"
	"time"

	"training-booking-service/config"
	bookingHandler "training-booking-service/internal/module/booking/handler"
	"training-booking-service/internal/module/booking/policy"
	bookingRepositories "training-booking-service/internal/module/booking/repositories"
	bookingUsecases "training-booking-service/internal/module/booking/usecases"
	certificateHandler "training-booking-service/internal/module/certificate/handler"
	certificateRepositories "training-booking-service/internal/module/certificate/repositories"
	certificateUsecases "training-booking-service/internal/module/certificate/usecases"
	scheduleHandler "training-booking-service/internal/module/schedule/handler"
	scheduleRepositories "training-booking-service/internal/module/schedule/repositories"
	scheduleUsecases "training-booking-service/internal/module/schedule/usecases"
	"training-booking-service/internal/pkg/audit"
	"training-booking-service/internal/pkg/database"
	"training-booking-service/internal/pkg/http"
	"training-booking-service/internal/pkg/httpclient"
	"training-booking-service/internal/pkg/jobs"
	"training-booking-service/internal/pkg/lock"
	log_internal "training-booking-service/internal/pkg/log"
	"training-booking-service/internal/pkg/messagestream"
	"training-booking-service/internal/pkg/middleware"
	"training-booking-service/internal/pkg/notification"
	"training-booking-service/internal/pkg/redis"
	"training-booking-service/internal/pkg/reference"
	"training-booking-service/internal/pkg/scheduler"
	router "training-booking-service/internal/route"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	cfg := config.InitConfig()

	app, messageRouters := initService(cfg)

	for _, router := range messageRouters {
		ctx := context.Background()
		go func(router *message.Router) {
			err := router.Run(ctx)
			if err != nil {
				log.Fatal(err)
			}
		}(router)
	}

	// start http server
	http.StartHttpServer(app, cfg.HttpServer.Port)
}

func initService(cfg *config.Config) (*fiber.App, []*message.Router) {

	// init database
	db := database.GetConnection(&cfg.Database)
	tx := database.NewTransactor(db)
	// init redis
	redisClient := redis.SetupClient(&cfg.Redis)
	// init logger
	logger := log_internal.Setup()
	// init http client
	cb := httpclient.InitCircuitBreaker(&cfg.HttpClient, cfg.HttpClient.Type)
	httpClient := httpclient.InitHttpClient(&cfg.HttpClient, cb)

	ctx := context.Background()
	// init message stream
	amqp := messagestream.NewAmpq(&cfg.MessageStream, logger.Logger)

	// Init Subscriber
	subscriber, err := amqp.NewSubscriber()
	if err != nil {
		logger.Ctx(ctx).Error("Failed to create subscriber", zap.Error(err))
	}

	// Init Publisher
	publisher, err := amqp.NewPublisher()
	if err != nil {
		logger.Ctx(ctx).Error("Failed to create publisher", zap.Error(err))
	}

	// init scheduler
	sch := scheduler.Scheduler{Log: logger}
	sch.InitClient(&cfg.Redis)

	refs := reference.NewGenerator(reference.NewPostgresCounter(db))
	auditLog := audit.New(db)
	notifier := notification.New(publisher, logger)
	validator := validator.New()

	scheduleRepo := scheduleRepositories.New(db, logger)
	scheduleUsecase := scheduleUsecases.New(scheduleRepo, tx, auditLog, logger, scheduleUsecases.Options{
		CacheSize: cfg.Cache.Size,
		CacheTTL:  cfg.Cache.TTL,
	})

	bookingRepo := bookingRepositories.New(db, logger, httpClient, &cfg.UserService)
	bookingUsecase := bookingUsecases.New(bookingRepo, scheduleUsecase, tx, refs, &sch, notifier, auditLog, logger, bookingUsecases.Options{
		PaymentExpiry: cfg.Booking.PaymentExpiry,
		Currency:      cfg.Booking.Currency,
		Policy:        policy.New(policy.DefaultRules),
	})

	certificateRepo := certificateRepositories.New(db, logger)
	certificateUsecase := certificateUsecases.New(certificateRepo, tx, refs, notifier, auditLog, logger, certificateUsecases.Options{
		Issuer: cfg.Certificate.Issuer,
	})

	middleware := middleware.Middleware{
		Log:           logger,
		Repo:          bookingRepo,
		WebhookSecret: cfg.HttpServer.WebhookSecret,
	}

	handlerBooking := bookingHandler.BookingHandler{
		Log:       logger,
		Validator: validator,
		Usecase:   bookingUsecase,
		Publish:   publisher,
	}
	handlerSchedule := scheduleHandler.ScheduleHandler{
		Log:       logger,
		Validator: validator,
		Usecase:   scheduleUsecase,
	}
	handlerCertificate := certificateHandler.CertificateHandler{
		Log:       logger,
		Validator: validator,
		Usecase:   certificateUsecase,
		Publish:   publisher,
	}

	// delayed tasks
	go sch.StartHandler(&cfg.Redis, cfg.Scheduler.Concurrency,
		[]string{scheduler.TypeSetPaymentExpired},
		[]func(ctx context.Context, t *asynq.Task) error{handlerBooking.SetPaymentExpired},
	)
	if cfg.Scheduler.MonitoringEnabled {
		go sch.StartMonitoring(&cfg.Redis, cfg.Scheduler.MonitoringPort)
	}

	// periodic jobs
	runner := jobs.NewRunner(lock.New(redisClient, logger), logger)
	err = runner.Register(cfg.Scheduler.CertificateExpiryCron, "certificate_expiry", 10*time.Minute, func(ctx context.Context) error {
		_, err := certificateUsecase.ExpireCertificates(ctx)
		return err
	})
	if err != nil {
		logger.Ctx(ctx).Error("Failed to register certificate_expiry job", zap.Error(err))
	}
	runner.Start()

	var messageRouters []*message.Router

	paymentWebhookRouter, err := messagestream.NewRouter(amqp.Logger(), publisher, messagestream.PoisonedQueue, "payment_webhook_handler", bookingHandler.TopicPaymentWebhook, subscriber, handlerBooking.ConsumePaymentWebhook)
	if err != nil {
		logger.Ctx(ctx).Error("Failed to create payment_webhook router", zap.Error(err))
	} else {
		messageRouters = append(messageRouters, paymentWebhookRouter)
	}

	certificateEmailedRouter, err := messagestream.NewRouter(amqp.Logger(), publisher, messagestream.PoisonedQueue, "certificate_emailed_handler", certificateHandler.TopicCertificateEmailed, subscriber, handlerCertificate.ConsumeCertificateEmailed)
	if err != nil {
		logger.Ctx(ctx).Error("Failed to create certificate_emailed router", zap.Error(err))
	} else {
		messageRouters = append(messageRouters, certificateEmailedRouter)
	}

	serverHttp := http.SetupHttpEngine()

	r := router.Initialize(serverHttp, &handlerBooking, &handlerSchedule, &handlerCertificate, &middleware)

	return r, messageRouters

}
