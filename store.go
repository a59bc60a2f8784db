package cfcassandra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

const (
	storeStmt = `INSERT INTO %s (id, value) VALUES (?, ?)`
	fetchStmt = `SELECT value FROM %s WHERE id = ?`
)

// KeyValueStore stores and fetches string values by key in two-column
// tables of the client's keyspace.
//
// Every operation first checks that the table exists; it never creates one.
type KeyValueStore struct {
	guard *SchemaGuard
}

// NewKeyValueStore creates a key-value store guarded by guard.
func NewKeyValueStore(guard *SchemaGuard) *KeyValueStore {
	return &KeyValueStore{guard: guard}
}

// Store writes value under key in table. An existing value is overwritten.
//
// Parameters:
//   - ctx: Context for cancellation
//   - table: Table name
//   - key: Row key (id column)
//   - value: Value to store
//
// Returns:
//   - error: *types.TableDoesNotExistError, *types.InvalidTableNameError,
//     a connection error or a query error
func (s *KeyValueStore) Store(ctx context.Context, table, key, value string) error {
	cfg := s.guard.conn.config
	start := time.Now()
	cfg.Metrics.IncStoreTotal()
	defer func() {
		cfg.Metrics.ObserveStoreDuration(time.Since(start).Seconds())
	}()

	err := s.store(ctx, table, key, value)
	if err != nil {
		cfg.Metrics.IncStoreError()
		return err
	}

	cfg.Logger.Debug("value stored", "table", table, "key", key)

	return nil
}

func (s *KeyValueStore) store(ctx context.Context, table, key, value string) error {
	keyspace := s.guard.conn.Keyspace()
	if err := s.guard.EnsureExists(ctx, keyspace, table); err != nil {
		return err
	}

	session, err := s.guard.conn.Session(ctx)
	if err != nil {
		return err
	}

	query := session.Query(fmt.Sprintf(storeStmt, qualifiedName(keyspace, table)), key, value).
		Consistency(s.guard.conn.config.Consistency)
	defer query.Release()

	if err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("cfcassandra: store %q in %s: %w", key, qualifiedName(keyspace, table), err)
	}

	return nil
}

// Fetch returns the value stored under key in table.
//
// Parameters:
//   - ctx: Context for cancellation
//   - table: Table name
//   - key: Row key (id column)
//
// Returns:
//   - string: The stored value
//   - error: *types.KeyNotFoundError when no row matches,
//     *types.TableDoesNotExistError, *types.InvalidTableNameError,
//     a connection error or a query error
func (s *KeyValueStore) Fetch(ctx context.Context, table, key string) (string, error) {
	cfg := s.guard.conn.config
	start := time.Now()
	cfg.Metrics.IncFetchTotal()
	defer func() {
		cfg.Metrics.ObserveFetchDuration(time.Since(start).Seconds())
	}()

	value, err := s.fetch(ctx, table, key)
	switch {
	case errors.Is(err, types.ErrKeyNotFound):
		cfg.Metrics.IncFetchMiss()
		return "", err
	case err != nil:
		cfg.Metrics.IncFetchError()
		return "", err
	}

	cfg.Logger.Debug("value fetched", "table", table, "key", key)

	return value, nil
}

func (s *KeyValueStore) fetch(ctx context.Context, table, key string) (string, error) {
	keyspace := s.guard.conn.Keyspace()
	if err := s.guard.EnsureExists(ctx, keyspace, table); err != nil {
		return "", err
	}

	session, err := s.guard.conn.Session(ctx)
	if err != nil {
		return "", err
	}

	query := session.Query(fmt.Sprintf(fetchStmt, qualifiedName(keyspace, table)), key).
		Consistency(s.guard.conn.config.Consistency)
	defer query.Release()

	var value string
	if err := query.ScanContext(ctx, &value); err != nil {
		if errors.Is(err, cql.ErrNotFound) {
			return "", &types.KeyNotFoundError{Key: key}
		}

		return "", fmt.Errorf("cfcassandra: fetch %q from %s: %w", key, qualifiedName(keyspace, table), err)
	}

	return value, nil
}
