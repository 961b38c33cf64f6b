package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	bookingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Booking creation attempts by result",
		},
		[]string{"result"},
	)

	paymentWebhooksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_webhooks_total",
			Help: "Payment webhook deliveries by outcome and handling result",
		},
		[]string{"outcome", "result"},
	)

	cancellationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_cancellations_total",
			Help: "Booking cancellations by refund tier",
		},
		[]string{"tier"},
	)

	certificatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certificates_total",
			Help: "Certificate lifecycle events",
		},
		[]string{"action"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(bookingsTotal)
	prometheus.MustRegister(paymentWebhooksTotal)
	prometheus.MustRegister(cancellationsTotal)
	prometheus.MustRegister(certificatesTotal)
}

func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())

		httpRequestsTotal.WithLabelValues(c.Method(), path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())

		return err
	}
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

func RecordBooking(result string) {
	bookingsTotal.WithLabelValues(result).Inc()
}

func RecordPaymentWebhook(outcome, result string) {
	paymentWebhooksTotal.WithLabelValues(outcome, result).Inc()
}

func RecordCancellation(tier string) {
	cancellationsTotal.WithLabelValues(tier).Inc()
}

func RecordCertificate(action string) {
	certificatesTotal.WithLabelValues(action).Inc()
}
