package utils

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process-wide sugared logger. Development gets the
// human console encoder, production gets JSON. A preset that fails to build
// must not leave the process mute, so that path falls back to a plain
// stderr console logger at the requested level.
func NewLogger(level string, production bool) *zap.SugaredLogger {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLogLevel(level))

	logger, err := cfg.Build()
	if err != nil {
		logger = stderrLogger(parseLogLevel(level))
	}
	return logger.Sugar()
}

func stderrLogger(level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}

// NewNopLogger returns a logger that discards everything, for tests.
func NewNopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
