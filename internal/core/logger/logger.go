// Package logger provides logging utilities for the application.
package logger

import (
	"log"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// logger is the unfiltered root. Named children apply their own level on top.
var logger = zap.NewNop()

// Environment represents the application environment type.
type Environment string

const (
	// EnvironmentDevelopment represents the development environment.
	EnvironmentDevelopment Environment = "development"
	// EnvironmentProduction represents the production environment.
	EnvironmentProduction Environment = "production"
)

// LogLevel represents the logging level type.
type LogLevel string

const (
	// LogLevelDebug represents the debug logging level.
	LogLevelDebug LogLevel = "debug"
	// Info represents the info logging level.
	Info LogLevel = "info"
	// Warn represents the warn logging level.
	Warn LogLevel = "warn"
	// Error represents the error logging level.
	Error LogLevel = "error"
)

// InitLogger initializes the global logger with the specified environment,
// global level and per-module level overrides (keyed by dotted logger name).
func InitLogger(environment Environment, logLevel LogLevel, levels map[string]string) {
	var cfg zap.Config

	if environment == EnvironmentDevelopment {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	global, err := ParseLevel(string(logLevel))
	if err != nil {
		global = zapcore.InfoLevel
	}
	// The root lets everything through; filtering happens per name.
	cfg.Level.SetLevel(zapcore.DebugLevel)

	root, err := cfg.Build()
	if err != nil {
		log.Printf("Failed to initialize zap logger: %v", err)
		os.Exit(1)
	}
	logger = root
	InitLevelConfig(levels, global)

	zap.RedirectStdLog(Named("stdlog"))
	slog.SetDefault(slog.New(zapslog.NewHandler(Named("slog").Core())))
}

// L returns the root application logger, filtered at the global level.
func L() *zap.Logger {
	return Named("")
}

// Named returns a child logger whose minimum level is resolved from the
// hierarchical level configuration.
func Named(name string) *zap.Logger {
	level := GetLevelForName(name)
	l := logger
	if name != "" {
		l = l.Named(name)
	}
	return l.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return &levelFilterCore{Core: c, level: level}
	}))
}

// Sync flushes the root logger.
func Sync() {
	_ = logger.Sync()
}
