// Package logging owns the operational run log: fetch attempts, retries,
// skipped organizations. Everything a user is meant to read goes through
// the console package instead.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger stays a nop until Init so library code can log unconditionally.
var logger = zap.NewNop().Sugar()

// Init builds the process logger. Level is one of debug, info, warn,
// error. The log goes to stderr unless path names a file.
func Init(level, path string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logging: parse level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}
	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("logging: build logger: %w", err)
	}
	logger = built.Sugar()
	return nil
}

// L returns the process logger.
func L() *zap.SugaredLogger {
	return logger
}

// Sync flushes buffered entries. Call it on shutdown.
func Sync() {
	_ = logger.Sync()
}
