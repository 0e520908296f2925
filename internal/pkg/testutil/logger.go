package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
	"github.com/stretchr/testify/require"
)

// SetupTestLogger sets up a logger for testing purposes.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	}

	err := logger.InitLogger(settings)
	require.NoError(t, err)

	log, err := logger.GetLogger()
	require.NoError(t, err)

	return log
}

// LogEntry is a message captured by RecordingLogger.
type LogEntry struct {
	Level   string
	Message string
}

// RecordingLogger is a logger.Logger that keeps every message in memory,
// so tests can assert on warnings emitted by the code under test.
type RecordingLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

// NewRecordingLogger creates an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Message: fmt.Sprint(args...)})
}

// Messages returns the messages recorded at the given level.
func (l *RecordingLogger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []string
	for _, e := range l.Entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Debug records a debug message.
func (l *RecordingLogger) Debug(args ...interface{}) { l.record(config.LogLevelDebug, args...) }

// Info records an informational message.
func (l *RecordingLogger) Info(args ...interface{}) { l.record(config.LogLevelInfo, args...) }

// Warn records a warning message.
func (l *RecordingLogger) Warn(args ...interface{}) { l.record(config.LogLevelWarning, args...) }

// Error records an error message.
func (l *RecordingLogger) Error(args ...interface{}) { l.record(config.LogLevelError, args...) }

// Fatal records a critical message. It does not exit.
func (l *RecordingLogger) Fatal(args ...interface{}) { l.record(config.LogLevelCritical, args...) }

// Panic records a critical message and panics.
func (l *RecordingLogger) Panic(args ...interface{}) {
	l.record(config.LogLevelCritical, args...)
	panic(fmt.Sprint(args...))
}
