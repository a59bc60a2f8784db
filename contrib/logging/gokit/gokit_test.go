package gokit

import (
	"bytes"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesLogfmt(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info")
	require.NoError(t, err)

	logger.Info("table created", "keyspace", "app", "table", "users")

	out := buf.String()
	require.Contains(t, out, "level=info")
	require.Contains(t, out, `msg="table created"`)
	require.Contains(t, out, "keyspace=app")
	require.Contains(t, out, "table=users")
	require.Contains(t, out, "ts=")
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("hidden too")
	require.Empty(t, buf.String())

	logger.Warn("shown")
	logger.Error("also shown")
	require.Contains(t, buf.String(), "level=warn")
	require.Contains(t, buf.String(), "level=error")
}

func TestLoggerUnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "verbose")
	require.Error(t, err)
}

func TestLoggerOddKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := Wrap(log.NewLogfmtLogger(&buf))

	logger.Info("odd", "dangling")
	require.Contains(t, buf.String(), "dangling=")
}

func TestLoggerFatalExits(t *testing.T) {
	var buf bytes.Buffer
	logger := Wrap(log.NewLogfmtLogger(&buf))

	code := -1
	logger.exit = func(c int) { code = c }

	logger.Fatal("boom", "error", "disk full")
	require.Equal(t, 1, code)
	require.Contains(t, buf.String(), "level=error")
	require.Contains(t, buf.String(), "msg=boom")
}
