package testutil

import (
	"sync"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

// LogEntry is one message captured by RecordingLogger.
type LogEntry struct {
	Level         string
	Message       string
	KeysAndValues []any
}

// RecordingLogger is a types.Logger that keeps every message in memory.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Compile-time assertion that RecordingLogger implements types.Logger.
var _ types.Logger = (*RecordingLogger)(nil)

// NewRecordingLogger creates an empty recording logger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

// Entries returns a copy of the captured entries.
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]LogEntry(nil), l.entries...)
}

// Has reports whether a message was logged at level.
func (l *RecordingLogger) Has(level, msg string) bool {
	for _, e := range l.Entries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}

	return false
}

func (l *RecordingLogger) add(level, msg string, kv []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, KeysAndValues: kv})
}

// Debug records the message.
func (l *RecordingLogger) Debug(msg string, kv ...any) { l.add("debug", msg, kv) }

// Info records the message.
func (l *RecordingLogger) Info(msg string, kv ...any) { l.add("info", msg, kv) }

// Warn records the message.
func (l *RecordingLogger) Warn(msg string, kv ...any) { l.add("warn", msg, kv) }

// Error records the message.
func (l *RecordingLogger) Error(msg string, kv ...any) { l.add("error", msg, kv) }

// Fatal records the message. It does not exit.
func (l *RecordingLogger) Fatal(msg string, kv ...any) { l.add("fatal", msg, kv) }
