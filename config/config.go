package config

import (
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpServer    HttpServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	MessageStream MessageStreamConfig
	HttpClient    HttpClientConfig
	UserService   UserServiceConfig
	Scheduler     SchedulerConfig
	Cache         CacheConfig
	Booking       BookingConfig
	Certificate   CertificateConfig
}

type HttpServerConfig struct {
	Port          string `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	WebhookSecret string `envconfig:"PAYMENT_WEBHOOK_SECRET" required:"true"`
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            string        `envconfig:"DB_PORT" default:"5432"`
	Username        string        `envconfig:"DB_USERNAME" default:"postgres"`
	Password        string        `envconfig:"DB_PASSWORD"`
	DBName          string        `envconfig:"DB_NAME" default:"training_booking"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type MessageStreamConfig struct {
	Host     string `envconfig:"MESSAGE_STREAM_HOST" default:"localhost"`
	Port     string `envconfig:"MESSAGE_STREAM_PORT" default:"5672"`
	Username string `envconfig:"MESSAGE_STREAM_USERNAME" default:"guest"`
	Password string `envconfig:"MESSAGE_STREAM_PASSWORD" default:"guest"`
}

type HttpClientConfig struct {
	// Type selects the breaker: "consecutive", "error_rate" or "threshold".
	Type              string        `envconfig:"HTTP_CLIENT_CB_TYPE" default:"consecutive"`
	Timeout           time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"5s"`
	ConsecutiveFailed int64         `envconfig:"HTTP_CLIENT_CB_CONSECUTIVE_FAILED" default:"5"`
	ErrorRate         float64       `envconfig:"HTTP_CLIENT_CB_ERROR_RATE" default:"0.5"`
	Threshold         int64         `envconfig:"HTTP_CLIENT_CB_THRESHOLD" default:"10"`
}

type UserServiceConfig struct {
	Host string `envconfig:"USER_SERVICE_HOST" default:"localhost"`
	Port string `envconfig:"USER_SERVICE_PORT" default:"8081"`
}

type SchedulerConfig struct {
	MonitoringEnabled bool   `envconfig:"SCHEDULER_MONITORING_ENABLED" default:"false"`
	MonitoringPort    string `envconfig:"SCHEDULER_MONITORING_PORT" default:"8090"`
	Concurrency       int    `envconfig:"SCHEDULER_CONCURRENCY" default:"10"`
	// CertificateExpiryCron runs the expiry sweep, robfig/cron syntax.
	CertificateExpiryCron string `envconfig:"CERTIFICATE_EXPIRY_CRON" default:"0 2 * * *"`
}

type CacheConfig struct {
	Size int           `envconfig:"CATALOG_CACHE_SIZE" default:"512"`
	TTL  time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`
}

type BookingConfig struct {
	PaymentExpiry time.Duration `envconfig:"BOOKING_PAYMENT_EXPIRY" default:"30m"`
	Currency      string        `envconfig:"BOOKING_CURRENCY" default:"GBP"`
}

type CertificateConfig struct {
	Issuer string `envconfig:"CERTIFICATE_ISSUER" default:"Training Academy"`
}

func InitConfig() *Config {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return &cfg
}
