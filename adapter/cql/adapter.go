// Package cql provides CQL-specific adapter interfaces for different gocql versions.
package cql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

// Type aliases for convenience - re-export from types package.
type Consistency = types.Consistency

// Re-export consistency level constants for convenience.
const (
	Any         = types.Any
	One         = types.One
	Two         = types.Two
	Three       = types.Three
	Quorum      = types.Quorum
	All         = types.All
	LocalQuorum = types.LocalQuorum
	EachQuorum  = types.EachQuorum
	Serial      = types.Serial
	LocalSerial = types.LocalSerial
	LocalOne    = types.LocalOne
)

// Driver-neutral errors returned by adapters.
var (
	// ErrNotFound is returned by Query.ScanContext when the result has no rows.
	ErrNotFound = errors.New("cql: not found")

	// ErrAuthentication marks connection errors caused by rejected credentials.
	ErrAuthentication = errors.New("cql: authentication failed")

	// ErrNoHostAvailable marks connection errors where no contact point answered.
	ErrNoHostAvailable = errors.New("cql: no host available")
)

// errCodeCredentials is the native protocol error code for bad credentials.
const errCodeCredentials = 0x0100

// ClusterParams is the driver-facing shape of the connection configuration.
type ClusterParams struct {
	// Keyspace is the keyspace all statements are qualified with.
	Keyspace string

	// Username and Password are used for password authentication.
	Username string
	Password string

	// Hosts are the contact points. Each may carry its own ":port".
	Hosts []string

	// Port is the native transport port. Zero leaves the driver default.
	Port int

	// SSL enables transport encryption.
	SSL bool

	// ConnectTimeout bounds the initial connection.
	ConnectTimeout time.Duration
}

// Connector establishes sessions from ClusterParams.
//
// Implementations must wrap authentication failures with ErrAuthentication and
// every other connection failure with ErrNoHostAvailable; ClassifyConnectError
// does this for any driver speaking the native protocol.
type Connector interface {
	// Connect builds a cluster handle from params and opens a session on it.
	Connect(ctx context.Context, params ClusterParams) (Session, error)
}

// ConnectorFunc adapts a function to the Connector interface.
type ConnectorFunc func(ctx context.Context, params ClusterParams) (Session, error)

// Connect calls f(ctx, params).
func (f ConnectorFunc) Connect(ctx context.Context, params ClusterParams) (Session, error) {
	return f(ctx, params)
}

// Session represents a raw CQL session from the underlying driver.
//
// It exposes only what the key-value layer needs: parameterized statements
// (which drivers prepare and cache transparently) and keyspace metadata.
type Session interface {
	// Query creates a new query for the given statement.
	//
	// Parameters:
	//   - stmt: CQL statement with ? placeholders
	//   - values: Values to bind to placeholders
	//
	// Returns:
	//   - Query: A query builder
	Query(stmt string, values ...any) Query

	// KeyspaceExists reports whether the cluster metadata knows the keyspace.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - keyspace: Keyspace name (case-sensitive)
	//
	// Returns:
	//   - bool: true if the keyspace exists
	//   - error: Metadata lookup failure
	KeyspaceExists(ctx context.Context, keyspace string) (bool, error)

	// Close terminates the session.
	Close()
}

// Query represents a raw CQL query from the underlying driver.
type Query interface {
	// Consistency sets the consistency level.
	Consistency(c Consistency) Query

	// ExecContext executes the query with context.
	ExecContext(ctx context.Context) error

	// ScanContext executes and scans a single row with context.
	// Returns ErrNotFound when the result is empty.
	ScanContext(ctx context.Context, dest ...any) error

	// IterContext returns an iterator for results with context.
	IterContext(ctx context.Context) Iter

	// Statement returns the CQL statement.
	Statement() string

	// Release returns the query to a pool (if applicable).
	Release()
}

// Iter represents a raw CQL iterator from the underlying driver.
type Iter interface {
	// Scan reads the next row.
	Scan(dest ...any) bool

	// Close closes the iterator.
	Close() error
}

// ClassifyConnectError wraps a session creation error with ErrAuthentication
// or ErrNoHostAvailable.
//
// Drivers often flatten the server error into a string while building the
// control connection, so the check falls back to the messages Cassandra and
// ScyllaDB send for rejected credentials.
//
// Parameters:
//   - err: Error returned by the driver while creating a session
//
// Returns:
//   - error: err wrapped with a driver-neutral sentinel, or nil if err is nil
func ClassifyConnectError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrAuthentication) || errors.Is(err, ErrNoHostAvailable) {
		return err
	}
	if isAuthError(err) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	return fmt.Errorf("%w: %w", ErrNoHostAvailable, err)
}

func isAuthError(err error) bool {
	var coded interface{ Code() int }
	if errors.As(err, &coded) && coded.Code() == errCodeCredentials {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"bad credentials",
		"and/or password are incorrect",
		"authentication failed",
		"authenticationexception",
		"unexpected authenticator",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}
