package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestLogger_WithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromCore(core).With("request_id", "abc")

	log.Warn("stage failed", "stage", "resume")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "stage failed", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "abc", fields["request_id"])
	assert.Equal(t, "resume", fields["stage"])
}

func TestNewNop(t *testing.T) {
	log := NewNop()

	log.Info("ignored")
	assert.NoError(t, log.Sync())
}
