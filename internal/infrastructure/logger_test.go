package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/config"
)

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	logger, err := InitializeLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = os.Stat(logFile)
	require.NoError(t, err, "log file should be created")

	logger.Info("test message", "key", "value")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &entry))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestInitializeLoggerOnlyOnce(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	first, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "console"})
	require.NoError(t, err)

	second, err := InitializeLogger(config.LoggingConfig{Level: "debug", Output: "console"})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, GetLogger())
}

func TestNewLogger_Formats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		check  func(t *testing.T, out string)
	}{
		{
			name:   "json",
			format: "json",
			check: func(t *testing.T, out string) {
				assert.True(t, strings.HasPrefix(out, "{"))
				assert.Contains(t, out, `"msg":"loaded"`)
			},
		},
		{
			name:   "text",
			format: "text",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "msg=loaded")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, config.LoggingConfig{Level: "info", Format: tt.format})

			logger.Info("loaded")
			tt.check(t, buf.String())
		})
	}
}

func TestTraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LoggingConfig{Level: "info", Format: "json"})

	ctx := WithTraceID(context.Background(), "trace-123")
	logger.InfoContext(ctx, "with trace")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trace-123", entry["trace_id"])

	buf.Reset()
	WithComponent(logger, "loader").InfoContext(ctx, "derived")
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trace-123", entry["trace_id"])
	assert.Equal(t, "loader", entry["component"])
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "DEBUG"},
		{"INFO", "INFO"},
		{"warning", "WARN"},
		{"warn", "WARN"},
		{"error", "ERROR"},
		{"bogus", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input).String())
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LoggingConfig{Level: "warn", Format: "json"})

	logger.Info("dropped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Len(t, id, 36)

	assert.Equal(t, id, GetTraceID(EnsureTraceID(ctx)), "existing trace id must be kept")
	assert.Empty(t, GetTraceID(nil))
}

func TestComponentAndErrorLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LoggingConfig{Level: "info", Format: "json"})

	WithError(WithComponent(logger, "console"), os.ErrNotExist).Error("round failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "console", entry["component"])
	assert.Equal(t, os.ErrNotExist.Error(), entry["error"])

	assert.Same(t, logger, WithError(logger, nil))
}
