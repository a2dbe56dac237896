package util

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Field is a key/value attached to an entry, e.g. F("job_id", job.ID)
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// LogFormat selects how entries are encoded
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// Output is a log destination
type Output interface {
	Write(entry LogEntry) error
	Close() error
}

// LogEntry is one encoded log line. Caller is set for warnings and errors.
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
	Caller    string         `json:"caller,omitempty"`
}

// sink is shared by a logger and every logger derived from it with With
type sink struct {
	mu      sync.RWMutex
	level   LogLevel
	outputs []Output
}

// Logger writes structured entries to its outputs
type Logger struct {
	sink   *sink
	fields map[string]any
	format LogFormat
}

// LoggerInterface is what the global helpers log through
type LoggerInterface interface {
	Debug(msg string, fields ...Field)
	Debugf(format string, args ...any)
	Info(msg string, fields ...Field)
	Infof(format string, args ...any)
	Warn(msg string, fields ...Field)
	Warnf(format string, args ...any)
	Error(msg string, fields ...Field)
	Errorf(format string, args ...any)
	With(fields ...Field) LoggerInterface
	WithContext(ctx context.Context) LoggerInterface
	SetLevel(level LogLevel)
	AddOutput(output Output)
}

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	Level  string
	File   string
	Format LogFormat
	// Console mirrors entries to stderr.
	Console bool
}

// NewLogger creates a logger writing to the configured file and, with
// Console set, to stderr. At least one destination is required.
func NewLogger(opts LoggerOptions) (*Logger, error) {
	if opts.File == "" && !opts.Console {
		return nil, errors.New("log file must be specified when console logging is off")
	}

	format := opts.Format
	if format != FormatJSON {
		format = FormatText
	}
	logger := newLogger(parseLogLevel(opts.Level), format)

	if opts.Console {
		logger.AddOutput(NewConsoleOutput(os.Stderr, format))
	}
	if opts.File != "" {
		fileOutput, err := NewFileOutput(opts.File, format)
		if err != nil {
			return nil, fmt.Errorf("create log file %s: %w", opts.File, err)
		}
		logger.AddOutput(fileOutput)
	}
	return logger, nil
}

func newLogger(level LogLevel, format LogFormat) *Logger {
	return &Logger{
		sink:   &sink{level: level},
		fields: map[string]any{},
		format: format,
	}
}

// parseLogLevel maps a --debug style name to a level, defaulting to info
func parseLogLevel(name string) LogLevel {
	switch strings.ToLower(name) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// caller names the file and line that called a Logger method
func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

func (l *Logger) log(level LogLevel, msg string, fields []Field) {
	l.sink.mu.RLock()
	defer l.sink.mu.RUnlock()

	if level < l.sink.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level.String(),
		Message:   msg,
		Fields:    make(map[string]any, len(l.fields)+len(fields)),
	}
	for k, v := range l.fields {
		entry.Fields[k] = v
	}
	for _, field := range fields {
		entry.Fields[field.Key] = field.Value
	}
	if level >= LevelWarn {
		// log <- Warn/Error <- caller
		entry.Caller = caller(3)
	}

	for _, output := range l.sink.outputs {
		if err := output.Write(entry); err != nil {
			log.Printf("Failed to write log entry: %v", err)
		}
	}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *Logger) Debugf(format string, args ...any) {
	l.log(LevelDebug, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Infof(format string, args ...any) {
	l.log(LevelInfo, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.log(LevelWarn, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log(LevelError, fmt.Sprintf(format, args...), nil)
}

// With returns a logger that adds fields to every entry. It shares the
// level and outputs of l.
func (l *Logger) With(fields ...Field) LoggerInterface {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, field := range fields {
		merged[field.Key] = field.Value
	}
	return &Logger{sink: l.sink, fields: merged, format: l.format}
}

type fieldsKey struct{}

// ContextWithFields attaches log fields to ctx for WithContext.
func ContextWithFields(ctx context.Context, fields ...Field) context.Context {
	existing, _ := ctx.Value(fieldsKey{}).([]Field)
	merged := make([]Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// WithContext returns a logger carrying the fields attached to ctx.
func (l *Logger) WithContext(ctx context.Context) LoggerInterface {
	fields, _ := ctx.Value(fieldsKey{}).([]Field)
	return l.With(fields...)
}

func (l *Logger) SetLevel(level LogLevel) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

func (l *Logger) AddOutput(output Output) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.outputs = append(l.sink.outputs, output)
}

// Close closes every output
func (l *Logger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	var errs []error
	for _, output := range l.sink.outputs {
		errs = append(errs, output.Close())
	}
	l.sink.outputs = nil
	return errors.Join(errs...)
}
