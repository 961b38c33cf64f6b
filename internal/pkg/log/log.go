package log

import (
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Setup builds the service logger. Context-aware calls go through
// logger.Ctx(ctx) so trace ids are attached when a span is present.
func Setup() *otelzap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := cfg.Build()
	if err != nil {
		zapLogger = zap.NewExample()
	}

	return otelzap.New(zapLogger,
		otelzap.WithMinLevel(zapcore.InfoLevel),
		otelzap.WithTraceIDField(true),
	)
}

// Nop is used by tests that do not assert on log output.
func Nop() *otelzap.Logger {
	return otelzap.New(zap.NewNop())
}
