// Package logger provides logging utilities for the application.
package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// levelCache maps logger name to its resolved zapcore.Level.
var levelCache sync.Map

var (
	levelConfigMu  sync.RWMutex
	levelConfigMap map[string]string
	globalLevel    = zapcore.InfoLevel
)

// InitLevelConfig installs the per-module level overrides and the global
// fallback level. Previously resolved names are forgotten.
func InitLevelConfig(levels map[string]string, defaultLevel zapcore.Level) {
	levelConfigMu.Lock()
	defer levelConfigMu.Unlock()
	levelConfigMap = levels
	globalLevel = defaultLevel
	levelCache = sync.Map{}
}

// GetLevelForName returns the level configured for name. Lookup is
// case-sensitive: exact key first, then each dotted parent, then the global
// level. Results are cached until the next InitLevelConfig.
func GetLevelForName(name string) zapcore.Level {
	if cached, ok := levelCache.Load(name); ok {
		return cached.(zapcore.Level)
	}
	level := computeLevelForName(name)
	levelCache.Store(name, level)
	return level
}

func computeLevelForName(name string) zapcore.Level {
	levelConfigMu.RLock()
	defer levelConfigMu.RUnlock()

	if len(levelConfigMap) == 0 || name == "" {
		return globalLevel
	}

	for key := name; key != ""; key = parent(key) {
		levelStr, ok := levelConfigMap[key]
		if !ok {
			continue
		}
		// An unparsable value falls through to the next parent.
		if level, err := ParseLevel(levelStr); err == nil {
			return level
		}
	}
	return globalLevel
}

func parent(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[:i]
}

// ParseLevel parses a level name case-insensitively (debug, info, warn, error).
func ParseLevel(levelStr string) (zapcore.Level, error) {
	var level zapcore.Level
	err := level.UnmarshalText([]byte(strings.ToLower(levelStr)))
	return level, err
}
