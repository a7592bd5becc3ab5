package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "text")

	log.Info("hello", "key", "value")

	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "key=value")
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", "json")

	log.Debug("hello")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "text")

	log.Info("dropped")
	log.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}
