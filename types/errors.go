package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for every failure kind. The struct errors below unwrap to
// these, so callers may use either errors.Is or errors.As.
var (
	// ErrInvalidCredentials indicates the cluster rejected the login/password.
	ErrInvalidCredentials = errors.New("cfcassandra: invalid credentials")

	// ErrUnavailable indicates no cluster host could be reached.
	ErrUnavailable = errors.New("cfcassandra: cluster unavailable")

	// ErrInvalidTableName indicates a table name outside [0-9a-zA-Z_]+.
	ErrInvalidTableName = errors.New("cfcassandra: invalid table name")

	// ErrInvalidKeyspaceName indicates a keyspace name outside [0-9a-zA-Z_]+.
	ErrInvalidKeyspaceName = errors.New("cfcassandra: invalid keyspace name")

	// ErrTableDoesNotExist indicates the guarded table is missing.
	ErrTableDoesNotExist = errors.New("cfcassandra: table does not exist")

	// ErrKeyNotFound indicates a fetch found no row for the key.
	ErrKeyNotFound = errors.New("cfcassandra: key not found")

	// ErrMissingConfig indicates a mandatory connection detail is absent.
	ErrMissingConfig = errors.New("cfcassandra: missing connection detail")

	// ErrInvalidConfig indicates a connection detail has an unusable value.
	ErrInvalidConfig = errors.New("cfcassandra: invalid connection detail")

	// ErrClientClosed indicates an operation was attempted after Close.
	ErrClientClosed = errors.New("cfcassandra: client is closed")

	// ErrNilConnector indicates that a nil connector was configured.
	ErrNilConnector = errors.New("cfcassandra: connector cannot be nil")

	// ErrUnsupportedConsistency indicates a consistency level that cannot
	// serve both the writes and the reads of the key-value store.
	ErrUnsupportedConsistency = errors.New("cfcassandra: unsupported consistency level")
)

// InvalidCredentialsError is returned when the authentication handshake
// rejects the supplied login/password.
type InvalidCredentialsError struct {
	// Username is the principal that was rejected.
	Username string

	// Cause is the driver error.
	Cause error
}

// Error implements the error interface.
func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("cfcassandra: authentication rejected for %q: %v", e.Username, e.Cause)
}

// Unwrap returns the sentinel and the driver cause for errors.Is/As compatibility.
func (e *InvalidCredentialsError) Unwrap() []error {
	return []error{ErrInvalidCredentials, e.Cause}
}

// UnavailableError is returned when no contact point could be reached within
// the connection timeout.
type UnavailableError struct {
	// Hosts are the contact points that were tried.
	Hosts []string

	// Cause is the driver error.
	Cause error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("cfcassandra: no host available (tried %s): %v", strings.Join(e.Hosts, ","), e.Cause)
}

// Unwrap returns the sentinel and the driver cause for errors.Is/As compatibility.
func (e *UnavailableError) Unwrap() []error {
	return []error{ErrUnavailable, e.Cause}
}

// InvalidTableNameError is returned before any database call when a table
// name contains characters outside [0-9a-zA-Z_].
type InvalidTableNameError struct {
	Name string
}

// Error implements the error interface.
func (e *InvalidTableNameError) Error() string {
	return fmt.Sprintf("cfcassandra: invalid table name %q: only letters, digits and underscores are allowed", e.Name)
}

// Unwrap returns ErrInvalidTableName.
func (e *InvalidTableNameError) Unwrap() error {
	return ErrInvalidTableName
}

// InvalidKeyspaceNameError is returned when a keyspace name contains
// characters outside [0-9a-zA-Z_].
type InvalidKeyspaceNameError struct {
	Name string
}

// Error implements the error interface.
func (e *InvalidKeyspaceNameError) Error() string {
	return fmt.Sprintf("cfcassandra: invalid keyspace name %q: only letters, digits and underscores are allowed", e.Name)
}

// Unwrap returns ErrInvalidKeyspaceName.
func (e *InvalidKeyspaceNameError) Unwrap() error {
	return ErrInvalidKeyspaceName
}

// TableDoesNotExistError is returned by the schema guard that precedes every
// store and fetch.
type TableDoesNotExistError struct {
	Keyspace string
	Table    string
}

// Error implements the error interface.
func (e *TableDoesNotExistError) Error() string {
	return fmt.Sprintf("cfcassandra: table %q does not exist in keyspace %q", e.Table, e.Keyspace)
}

// Unwrap returns ErrTableDoesNotExist.
func (e *TableDoesNotExistError) Unwrap() error {
	return ErrTableDoesNotExist
}

// KeyNotFoundError is returned by fetch when no row matches the key.
type KeyNotFoundError struct {
	Key string
}

// Error implements the error interface.
func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("cfcassandra: %q key not found", e.Key)
}

// Unwrap returns ErrKeyNotFound.
func (e *KeyNotFoundError) Unwrap() error {
	return ErrKeyNotFound
}

// MissingConfigError is a configuration fault: a mandatory connection detail
// is absent or empty.
type MissingConfigError struct {
	Key string
}

// Error implements the error interface.
func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("cfcassandra: missing mandatory connection detail %q", e.Key)
}

// Unwrap returns ErrMissingConfig.
func (e *MissingConfigError) Unwrap() error {
	return ErrMissingConfig
}

// InvalidConfigError is a configuration fault: a connection detail is present
// but cannot be converted to the expected type.
type InvalidConfigError struct {
	Key   string
	Value any
	Cause error
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("cfcassandra: invalid value %v for connection detail %q", e.Value, e.Key)
	}

	return fmt.Sprintf("cfcassandra: invalid value %v for connection detail %q: %v", e.Value, e.Key, e.Cause)
}

// Unwrap returns the sentinel and, when present, the conversion cause.
func (e *InvalidConfigError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidConfig}
	}

	return []error{ErrInvalidConfig, e.Cause}
}
