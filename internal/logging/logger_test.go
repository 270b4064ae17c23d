package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(t *testing.T) (*Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(traceLevel)
	return NewWithCore("TEST", core), logs
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level LogLevel
		want  []string
	}{
		{name: "error only", level: LevelError, want: []string{"e"}},
		{name: "info", level: LevelInfo, want: []string{"e", "w", "i"}},
		{name: "debug", level: LevelDebug, want: []string{"e", "w", "i", "d"}},
		{name: "trace", level: LevelTrace, want: []string{"e", "w", "i", "d", "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, logs := newObserved(t)
			l.SetLevel(tt.level)

			l.Error("e")
			l.Warn("w")
			l.Info("i")
			l.Debug("d")
			l.Trace("t")

			var got []string
			for _, entry := range logs.All() {
				got = append(got, entry.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatting(t *testing.T) {
	l, logs := newObserved(t)
	l.Info("built %d nodes from %q", 4, "input.txt")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, `built 4 nodes from "input.txt"`, entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "TEST", entry.LoggerName)
}

func TestWithPrefixSharesLevel(t *testing.T) {
	l, logs := newObserved(t)
	child := l.WithPrefix("parser")

	child.Debug("hidden")
	l.SetLevel(LevelDebug)
	child.Debug("shown")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "shown", entry.Message)
	assert.Equal(t, "TEST.parser", entry.LoggerName)
	assert.Equal(t, "TEST.parser", child.Prefix())
	assert.Equal(t, LevelDebug, child.Level())
}

func TestParseLevel(t *testing.T) {
	level, ok := ParseLevel("TRACE")
	assert.True(t, ok)
	assert.Equal(t, LevelTrace, level)
	assert.Equal(t, "TRACE", level.String())

	_, ok = ParseLevel("verbose")
	assert.False(t, ok)
}
