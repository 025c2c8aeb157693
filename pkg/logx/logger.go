package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Format selects the output encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Fields is structured data attached to a log line.
type Fields map[string]interface{}

// Config controls logger behavior. Zero values get sensible defaults.
type Config struct {
	Level      Level
	Format     Format
	Colors     bool
	TimeFormat string
	Output     io.Writer
}

// DefaultConfig returns console output at Info with colors.
func DefaultConfig() *Config {
	return &Config{
		Level:      LevelInfo,
		Format:     FormatConsole,
		Colors:     true,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	}
}

// LoadFromEnv builds a Config from LOG_LEVEL, LOG_FORMAT and LOG_COLOR.
func LoadFromEnv() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = ParseLevel(v)
	}
	if v := strings.ToLower(os.Getenv("LOG_FORMAT")); v == string(FormatJSON) {
		cfg.Format = FormatJSON
	}
	if v := os.Getenv("LOG_COLOR"); v != "" {
		cfg.Colors = strings.ToLower(v) == "true" || v == "1"
	}
	return cfg
}

// record is one log event handed to a formatter.
type record struct {
	Level     Level
	Message   string
	Fields    Fields
	Error     error
	Timestamp time.Time
}

type formatter interface {
	format(r *record) []byte
}

// Logger writes formatted log records to a single output.
type Logger struct {
	mu        sync.Mutex
	cfg       *Config
	formatter formatter
	out       io.Writer
	exitFunc  func(int)
}

// NewLogger creates a Logger for the given config.
func NewLogger(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	var f formatter
	if cfg.Format == FormatJSON {
		f = &jsonFormatter{timeFormat: cfg.TimeFormat}
	} else {
		f = &consoleFormatter{timeFormat: cfg.TimeFormat, colors: cfg.Colors}
	}
	return &Logger{cfg: cfg, formatter: f, out: out, exitFunc: os.Exit}
}

// SetLevel changes the minimum emitted level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.Level = level
}

// SetOutput redirects log output.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

func (l *Logger) log(level Level, msg string, fields Fields, err error) {
	l.mu.Lock()
	enabled := l.cfg.Level.Enabled(level)
	l.mu.Unlock()
	if !enabled {
		return
	}

	line := l.formatter.format(&record{
		Level:     level,
		Message:   msg,
		Fields:    fields,
		Error:     err,
		Timestamp: time.Now(),
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, werr := l.out.Write(line); werr != nil {
		fmt.Fprintf(os.Stderr, "logx: write failed: %v\n", werr)
	}
}

// WithField starts an entry with one field.
func (l *Logger) WithField(key string, value interface{}) *Entry {
	return newEntry(l).WithField(key, value)
}

// WithFields starts an entry with several fields.
func (l *Logger) WithFields(fields Fields) *Entry {
	return newEntry(l).WithFields(fields)
}

// WithError starts an entry carrying an error.
func (l *Logger) WithError(err error) *Entry {
	return newEntry(l).WithError(err)
}

func (l *Logger) exit(code int) { l.exitFunc(code) }
