// Package logging provides internal logging utilities for cfcassandra.
package logging

import "github.com/JCL38-ORANGE/cf-cassandra-example-app/types"

// NopLogger is a no-op logger that discards all log messages.
//
// It is the default logger when none is configured, so components never
// check for nil.
type NopLogger struct{}

// Compile-time assertion that NopLogger implements types.Logger.
var _ types.Logger = (*NopLogger)(nil)

// NewNopLogger creates a new no-op logger.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

// Debug discards the message.
func (l *NopLogger) Debug(_ string, _ ...any) {}

// Info discards the message.
func (l *NopLogger) Info(_ string, _ ...any) {}

// Warn discards the message.
func (l *NopLogger) Warn(_ string, _ ...any) {}

// Error discards the message.
func (l *NopLogger) Error(_ string, _ ...any) {}

// Fatal discards the message. It does not exit.
func (l *NopLogger) Fatal(_ string, _ ...any) {}
