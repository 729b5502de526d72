// Package logger provides a wrapper around logrus for structured logging.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a new configured logger instance
func NewLogger(logLevel string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// JSON in production, coloured text everywhere else
	if os.Getenv("ENVIRONMENT") == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	return logger
}

// LeveledLogger adapts a logrus entry to the key/value leveled logger interface
// used by retryablehttp.
type LeveledLogger struct {
	entry *logrus.Entry
}

// NewLeveledLogger creates a leveled logger tagged with the given component
func NewLeveledLogger(baseLogger *logrus.Logger, component string) *LeveledLogger {
	return &LeveledLogger{entry: baseLogger.WithField("component", component)}
}

func (l *LeveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.withKV(keysAndValues).Error(msg)
}

func (l *LeveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.withKV(keysAndValues).Warn(msg)
}

func (l *LeveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.withKV(keysAndValues).Info(msg)
}

func (l *LeveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.withKV(keysAndValues).Debug(msg)
}

func (l *LeveledLogger) withKV(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return l.entry.WithFields(fields)
}
