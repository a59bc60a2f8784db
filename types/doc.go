// Package types provides shared types and error definitions for the cfcassandra library.
//
// This is a leaf package with zero cfcassandra imports to prevent import cycles.
// All packages in cfcassandra can safely import this package.
//
// # Errors
//
// Every failure kind has a sentinel and a struct type carrying details:
//
//   - ErrInvalidCredentials / *InvalidCredentialsError: authentication rejected
//   - ErrUnavailable / *UnavailableError: no contact point reachable
//   - ErrInvalidTableName / *InvalidTableNameError: table name outside [0-9a-zA-Z_]+
//   - ErrInvalidKeyspaceName / *InvalidKeyspaceNameError: keyspace name outside [0-9a-zA-Z_]+
//   - ErrTableDoesNotExist / *TableDoesNotExistError: guard failure before store/fetch
//   - ErrKeyNotFound / *KeyNotFoundError: fetch on an absent key
//   - ErrMissingConfig / *MissingConfigError: mandatory connection detail absent
//   - ErrInvalidConfig / *InvalidConfigError: connection detail has a bad value
//
// Check for a kind with errors.Is, or extract details with errors.As:
//
//	var notFound *types.KeyNotFoundError
//	if errors.As(err, &notFound) {
//	    log.Printf("no value for %s", notFound.Key)
//	}
//
// # SessionState
//
// SessionState models the lifecycle of the single session owned by a
// ConnectionManager:
//
//	Unconnected -> Connecting -> Connected
//	Unconnected -> Connecting -> Failed
package types
