// Package gokit adapts a go-kit logger to the cfcassandra Logger interface.
package gokit

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

// Logger implements types.Logger on top of a go-kit log.Logger.
type Logger struct {
	logger log.Logger
	exit   func(int)
}

// Compile-time assertion that Logger implements types.Logger.
var _ types.Logger = (*Logger)(nil)

// Wrap adapts an existing go-kit logger.
//
// Parameters:
//   - logger: A go-kit logger, possibly already filtered with level.NewFilter
//
// Returns:
//   - *Logger: A types.Logger writing through logger
func Wrap(logger log.Logger) *Logger {
	return &Logger{logger: logger, exit: os.Exit}
}

// New creates a logfmt logger writing to w, filtered at the named level
// ("debug", "info", "warn" or "error") and stamped with a UTC timestamp.
//
// Parameters:
//   - w: Destination writer
//   - lvl: Minimum level to emit
//
// Returns:
//   - *Logger: The logger
//   - error: If lvl is not a known level name
func New(w io.Writer, lvl string) (*Logger, error) {
	opt, err := levelOption(lvl)
	if err != nil {
		return nil, err
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.Caller(5))

	return Wrap(logger), nil
}

func levelOption(lvl string) (level.Option, error) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("gokit: unknown log level %q", lvl)
	}
}

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.log(level.Debug(l.logger), msg, keysAndValues)
}

// Info logs an info-level message.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.log(level.Info(l.logger), msg, keysAndValues)
}

// Warn logs a warning-level message.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.log(level.Warn(l.logger), msg, keysAndValues)
}

// Error logs an error-level message.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.log(level.Error(l.logger), msg, keysAndValues)
}

// Fatal logs an error-level message and exits with status 1.
func (l *Logger) Fatal(msg string, keysAndValues ...any) {
	l.log(level.Error(l.logger), msg, keysAndValues)
	l.exit(1)
}

func (l *Logger) log(logger log.Logger, msg string, keysAndValues []any) {
	kv := make([]any, 0, len(keysAndValues)+3)
	kv = append(kv, "msg", msg)
	kv = append(kv, keysAndValues...)
	if len(keysAndValues)%2 != 0 {
		kv = append(kv, log.ErrMissingValue)
	}

	_ = logger.Log(kv...)
}
