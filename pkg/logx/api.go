package logx

import (
	"fmt"
	"io"
)

// defaultLogger is the process-wide logger. Configured from the environment
// at init; replaceable for tests via SetDefaultLogger.
var defaultLogger *Logger

func init() {
	defaultLogger = NewLogger(LoadFromEnv())
}

// SetDefaultLogger replaces the global logger.
func SetDefaultLogger(l *Logger) { defaultLogger = l }

// GetDefaultLogger returns the global logger.
func GetDefaultLogger() *Logger { return defaultLogger }

// SetLevel sets the global logger's minimum level.
func SetLevel(level Level) { defaultLogger.SetLevel(level) }

// SetOutput redirects the global logger's output.
func SetOutput(w io.Writer) { defaultLogger.SetOutput(w) }

func Debug(msg string) { defaultLogger.log(LevelDebug, msg, nil, nil) }
func Info(msg string)  { defaultLogger.log(LevelInfo, msg, nil, nil) }
func Warn(msg string)  { defaultLogger.log(LevelWarn, msg, nil, nil) }
func Error(msg string) { defaultLogger.log(LevelError, msg, nil, nil) }

// Fatal logs the message and exits the process.
func Fatal(msg string) {
	defaultLogger.log(LevelFatal, msg, nil, nil)
	defaultLogger.exit(1)
}

func Debugf(format string, args ...interface{}) {
	defaultLogger.log(LevelDebug, fmt.Sprintf(format, args...), nil, nil)
}

func Infof(format string, args ...interface{}) {
	defaultLogger.log(LevelInfo, fmt.Sprintf(format, args...), nil, nil)
}

func Warnf(format string, args ...interface{}) {
	defaultLogger.log(LevelWarn, fmt.Sprintf(format, args...), nil, nil)
}

func Errorf(format string, args ...interface{}) {
	defaultLogger.log(LevelError, fmt.Sprintf(format, args...), nil, nil)
}

// Fatalf logs the formatted message and exits the process.
func Fatalf(format string, args ...interface{}) {
	defaultLogger.log(LevelFatal, fmt.Sprintf(format, args...), nil, nil)
	defaultLogger.exit(1)
}

// WithField starts a structured entry on the global logger.
func WithField(key string, value interface{}) *Entry {
	return defaultLogger.WithField(key, value)
}

// WithFields starts a structured entry on the global logger.
func WithFields(fields Fields) *Entry { return defaultLogger.WithFields(fields) }

// WithError starts an entry carrying an error on the global logger.
func WithError(err error) *Entry { return defaultLogger.WithError(err) }
