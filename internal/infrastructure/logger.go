package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"bikeshare/internal/config"
)

type traceKey struct{}

// logState is the process-wide logger and the file it may own
var logState struct {
	once   sync.Once
	logger *slog.Logger

	mu   sync.Mutex
	file *os.File
}

// InitializeLogger builds the process logger from cfg and makes it the slog
// default. Later calls return the first logger.
//
// Output "console" writes to stderr so that prompts and reports on stdout stay
// clean. "file" appends to cfg.FilePath, "both" does both.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	var err error
	logState.once.Do(func() {
		var w io.Writer
		if w, err = logOutput(cfg); err != nil {
			return
		}
		logState.logger = NewLogger(w, cfg)
		slog.SetDefault(logState.logger)
	})
	return logState.logger, err
}

// GetLogger returns the process logger, or slog.Default before initialization
func GetLogger() *slog.Logger {
	if logState.logger == nil {
		return slog.Default()
	}
	return logState.logger
}

// NewLogger builds a logger writing to w without touching global state.
// Records carry the trace ID of the context they are logged with.
func NewLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	level := parseLogLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var h slog.Handler = slog.NewJSONHandler(w, opts)
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(traceHandler{h})
}

func logOutput(cfg config.LoggingConfig) (io.Writer, error) {
	output := strings.ToLower(cfg.Output)
	if output != "file" && output != "both" {
		return os.Stderr, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", cfg.FilePath, err)
	}

	logState.mu.Lock()
	logState.file = f
	logState.mu.Unlock()

	if output == "both" {
		return io.MultiWriter(os.Stderr, f), nil
	}
	return f, nil
}

// CloseLogFile closes the log file opened by InitializeLogger, if any
func CloseLogFile() error {
	logState.mu.Lock()
	defer logState.mu.Unlock()

	if logState.file == nil {
		return nil
	}
	err := logState.file.Close()
	logState.file = nil
	return err
}

// ResetLoggerForTesting drops the process logger so a test can initialize
// its own.
func ResetLoggerForTesting() {
	CloseLogFile()
	logState.logger = nil
	logState.once = sync.Once{}
}

// traceHandler adds trace_id from the record's context
type traceHandler struct {
	slog.Handler
}

func (h traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := GetTraceID(ctx); id != "" {
		r.AddAttrs(slog.String("trace_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return traceHandler{h.Handler.WithAttrs(attrs)}
}

func (h traceHandler) WithGroup(name string) slog.Handler {
	return traceHandler{h.Handler.WithGroup(name)}
}

// parseLogLevel accepts slog level names and "warning"; anything else is info
func parseLogLevel(level string) slog.Level {
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// WithTraceID returns ctx carrying traceID
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey{}, traceID)
}

// GetTraceID returns the trace ID stored in ctx, or ""
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}
