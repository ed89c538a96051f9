package ninject

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pkg/errors"
)

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	// filtering happens in Injector.log against the store's level
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger.Named("ninject"), nil
}

func (in *Injector) log(level zapcore.Level, msg string, fields ...zap.Field) {
	if !in.level.Enabled(level) {
		return
	}
	if ce := in.logger.Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}

// trace writes at the configured level, and only in debug mode.
func (in *Injector) trace(msg string, fields ...zap.Field) {
	if !in.debug {
		return
	}
	in.log(in.level.Level(), msg, fields...)
}
