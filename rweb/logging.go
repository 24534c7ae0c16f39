package rweb

import (
	"github.com/advdv/rhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger configured from the environment.
// Uses JSON encoding suitable for log aggregation.
// LOG_LEVEL controls the level (debug, info, warn, error).
func NewLogger(env Environment) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(env.logLevel())
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

type zapLogger struct{ *zap.Logger }

func (l zapLogger) LogUnhandledServeError(err error) {
	l.Logger.Error("unhandled server error", zap.Error(err))
}

func (l zapLogger) LogImplicitFlushError(err error) {
	l.Logger.Error("error while flushing implicitly", zap.Error(err))
}

func (l zapLogger) LogErrorPage(e *rhttp.Error) {
	l.Logger.Warn("rendered error page",
		zap.Int("code", int(e.Code())),
		zap.String("message", e.Message()),
		zap.String("detail", e.Detail()),
	)
}

func newZapRHTTPLogger(l *zap.Logger) rhttp.Logger {
	return zapLogger{l.Named("rhttp").Named("rweb")}
}
