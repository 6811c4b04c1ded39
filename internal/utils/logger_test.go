package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerHonorsLevel(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		production bool
		enabledAt  zapcore.Level
		mutedAt    zapcore.Level
	}{
		{"info in development", "info", false, zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn in production", "warn", true, zapcore.WarnLevel, zapcore.InfoLevel},
		{"error in development", "error", false, zapcore.ErrorLevel, zapcore.WarnLevel},
		{"unknown defaults to info", "nonsense", false, zapcore.InfoLevel, zapcore.DebugLevel},
		{"empty defaults to info", "", true, zapcore.InfoLevel, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := NewLogger(tt.level, tt.production).Desugar().Core()
			assert.True(t, core.Enabled(tt.enabledAt))
			assert.False(t, core.Enabled(tt.mutedAt))
		})
	}

	core := NewLogger("debug", false).Desugar().Core()
	assert.True(t, core.Enabled(zapcore.DebugLevel))
}

// The build-failure fallback must produce a logger that still emits, unlike
// a nop core which is enabled at no level.
func TestStderrLoggerHonorsLevel(t *testing.T) {
	core := stderrLogger(zapcore.WarnLevel).Core()
	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.WarnLevel))
	assert.True(t, core.Enabled(zapcore.ErrorLevel))
}
