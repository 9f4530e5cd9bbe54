package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{
		Level:       LogLevelInfo,
		Format:      LogFormatText,
		Output:      &buf,
		ServiceName: "rotaplan",
	})

	logger.Info("hello", "key", "value")
	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "service=rotaplan")
	assert.Contains(t, out, "key=value")
}

func TestNewLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{
		Level:       LogLevelInfo,
		Format:      LogFormatJSON,
		Output:      &buf,
		ServiceName: "rotaplan",
	})

	logger.Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "rotaplan", entry["service"])
}

func TestNewLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{
		Level:  LogLevelWarn,
		Format: LogFormatText,
		Output: &buf,
	})

	logger.Info("ignored")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseSlogLevel(LogLevelDebug))
	assert.Equal(t, slog.LevelWarn, parseSlogLevel(LogLevelWarn))
	assert.Equal(t, slog.LevelError, parseSlogLevel(LogLevelError))
	assert.Equal(t, slog.LevelInfo, parseSlogLevel(LogLevel("unknown")))
}
