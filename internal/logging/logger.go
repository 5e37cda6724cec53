// Package logging provides a small logging abstraction so the extraction
// pipeline is not tied to a specific logging framework.
package logging

import "github.com/sirupsen/logrus"

// Logger is the structured logging interface used throughout the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached.
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached.
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached.
	WithFields(fields ...Field) Logger

	// Fatal logs a fatal-level message and exits the program.
	Fatal(msg string, fields ...Field)
}

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

// Standardized field names for structured logging.
const (
	FieldFile      = "file_path"
	FieldBank      = "bank"
	FieldProvider  = "provider"
	FieldCategory  = "category"
	FieldRow       = "row"
	FieldReason    = "reason"
	FieldCount     = "count"
	FieldAmount    = "amount"
	FieldAccount   = "account"
	FieldOperation = "operation"
)

var defaultLogger Logger = NewLogrusAdapterFromLogger(logrus.StandardLogger())

// GetLogger returns the process-wide default logger.
func GetLogger() Logger {
	return defaultLogger
}

// SetDefaultLogger replaces the process-wide default logger. Passing nil is
// a no-op.
func SetDefaultLogger(l Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// SetAllLogLevels sets the level on the global logrus logger, which backs
// every adapter created from it.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
}
