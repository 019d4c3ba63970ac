package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op until InitLogger runs, so
// packages and tests can log without setup.
var Log = zap.NewNop()

// InitLogger builds the JSON production logger, or a console logger with
// debug output outside production.
func InitLogger() error {
	var cfg zap.Config
	if IsProduction() {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if lvl := getEnv("LOG_LEVEL", ""); lvl != "" {
		level, err := zapcore.ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	Log = logger
	return nil
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	_ = Log.Sync()
}
