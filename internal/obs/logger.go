// Package obs wraps go.uber.org/zap into the single *Logger every other
// package threads explicitly through constructors, rather than reaching for
// a global logger.
package obs

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin handle around a zap.SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// NewProduction builds a Logger at the given level ("debug", "info", "warn",
// "error"). An unrecognised level falls back to "info".
func NewProduction(level string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "ts"

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{SugaredLogger: l.Sugar()}, nil
}

// NewNop returns a Logger that discards everything, for tests and library
// callers that have not wired one up.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// Named returns a child Logger scoped under name, the way zap.Logger.Named
// prefixes log lines with a component path ("db", "db.cache", ...).
func (l *Logger) Named(name string) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.Named(name)}
}
