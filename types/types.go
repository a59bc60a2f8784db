// Package types provides shared types and errors for the cfcassandra library.
//
// This is a "leaf" package with no imports from other cfcassandra packages,
// allowing it to be imported by any package without causing import cycles.
package types

import (
	"fmt"
	"regexp"
	"strings"
)

// Consistency represents the Cassandra consistency level.
type Consistency uint16

// Common consistency levels matching gocql.
const (
	Any         Consistency = 0x00
	One         Consistency = 0x01
	Two         Consistency = 0x02
	Three       Consistency = 0x03
	Quorum      Consistency = 0x04
	All         Consistency = 0x05
	LocalQuorum Consistency = 0x06
	EachQuorum  Consistency = 0x07
	Serial      Consistency = 0x08
	LocalSerial Consistency = 0x09
	LocalOne    Consistency = 0x0A
)

// String returns the CQL name of the consistency level.
func (c Consistency) String() string {
	switch c {
	case Any:
		return "ANY"
	case One:
		return "ONE"
	case Two:
		return "TWO"
	case Three:
		return "THREE"
	case Quorum:
		return "QUORUM"
	case All:
		return "ALL"
	case LocalQuorum:
		return "LOCAL_QUORUM"
	case EachQuorum:
		return "EACH_QUORUM"
	case Serial:
		return "SERIAL"
	case LocalSerial:
		return "LOCAL_SERIAL"
	case LocalOne:
		return "LOCAL_ONE"
	}

	return "UNKNOWN"
}

// ParseConsistency parses a consistency level name such as "quorum" or
// "LOCAL_ONE". Dashes are accepted in place of underscores.
func ParseConsistency(name string) (Consistency, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for c := Any; c <= LocalOne; c++ {
		if c.String() == normalized {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown consistency level %q", name)
}

// ValidateReadWrite returns an error wrapping ErrUnsupportedConsistency
// unless c is accepted for both a plain INSERT and a SELECT.
//
// ANY and EACH_QUORUM are refused for reads by some server versions. The
// serial levels only apply to lightweight transactions.
func ValidateReadWrite(c Consistency) error {
	switch c {
	case One, Two, Three, Quorum, All, LocalQuorum, LocalOne:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedConsistency, c)
	}
}

// SessionState is the lifecycle state of a lazily established session.
//
//	Unconnected -> Connecting -> Connected
//	Unconnected -> Connecting -> Failed
//
// Failed is terminal: a new ConnectionManager is required to retry.
// Closed is entered from any state once the owner releases the session.
type SessionState int32

const (
	// SessionUnconnected means no connection attempt has been made yet.
	SessionUnconnected SessionState = iota
	// SessionConnecting means a connection attempt is in flight.
	SessionConnecting
	// SessionConnected means a live session is cached and reused.
	SessionConnected
	// SessionFailed means the single connection attempt failed.
	SessionFailed
	// SessionClosed means the session was released by its owner.
	SessionClosed
)

// String returns the string representation of the SessionState.
func (s SessionState) String() string {
	switch s {
	case SessionUnconnected:
		return "unconnected"
	case SessionConnecting:
		return "connecting"
	case SessionConnected:
		return "connected"
	case SessionFailed:
		return "failed"
	case SessionClosed:
		return "closed"
	}

	return "unknown"
}

// identifierRegex matches the schema object names accepted by this library.
var identifierRegex = regexp.MustCompile(`^[0-9a-zA-Z_]+$`)

// ValidIdentifier reports whether name is a non-empty string made only of
// ASCII letters, digits and underscores.
func ValidIdentifier(name string) bool {
	return identifierRegex.MatchString(name)
}

// Logger is the structured logger used throughout the library.
//
// Each method takes a message followed by alternating key/value pairs:
//
//	logger.Info("table created", "keyspace", ks, "table", name)
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info-level message.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning-level message.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error-level message.
	Error(msg string, keysAndValues ...any)

	// Fatal logs a fatal message. Implementations may terminate the process.
	Fatal(msg string, keysAndValues ...any)
}
