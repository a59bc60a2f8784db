package cfcassandra

import (
	"context"
	"fmt"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

const (
	tableExistsStmt = `SELECT table_name FROM system_schema.tables WHERE keyspace_name = ? AND table_name = ?`
	createTableStmt = `CREATE TABLE IF NOT EXISTS %s (id varchar PRIMARY KEY, value varchar)`
	dropTableStmt   = `DROP TABLE IF EXISTS %s`
)

// ValidateTableName checks that name only contains [0-9a-zA-Z_].
//
// Returns:
//   - error: *types.InvalidTableNameError, or nil
func ValidateTableName(name string) error {
	if !types.ValidIdentifier(name) {
		return &types.InvalidTableNameError{Name: name}
	}

	return nil
}

// ValidateKeyspaceName checks that name only contains [0-9a-zA-Z_].
//
// Returns:
//   - error: *types.InvalidKeyspaceNameError, or nil
func ValidateKeyspaceName(name string) error {
	if !types.ValidIdentifier(name) {
		return &types.InvalidKeyspaceNameError{Name: name}
	}

	return nil
}

// qualifiedName quotes a validated keyspace and table into "ks"."table".
func qualifiedName(keyspace, table string) string {
	return `"` + keyspace + `"."` + table + `"`
}

// SchemaGuard validates schema object names and checks them against the
// cluster's metadata catalog before use.
//
// Names are validated before any database call is made, so an invalid
// identifier never reaches a statement.
type SchemaGuard struct {
	conn *ConnectionManager
}

// NewSchemaGuard creates a schema guard over conn.
func NewSchemaGuard(conn *ConnectionManager) *SchemaGuard {
	return &SchemaGuard{conn: conn}
}

// KeyspaceExists reports whether keyspace exists in the cluster metadata.
//
// Parameters:
//   - ctx: Context for cancellation
//   - keyspace: Keyspace name
//
// Returns:
//   - bool: true if the keyspace exists
//   - error: *types.InvalidKeyspaceNameError, a connection error or a metadata error
func (g *SchemaGuard) KeyspaceExists(ctx context.Context, keyspace string) (bool, error) {
	if err := ValidateKeyspaceName(keyspace); err != nil {
		return false, err
	}

	session, err := g.conn.Session(ctx)
	if err != nil {
		return false, err
	}

	exists, err := session.KeyspaceExists(ctx, keyspace)
	if err != nil {
		return false, fmt.Errorf("cfcassandra: keyspace metadata for %q: %w", keyspace, err)
	}

	return exists, nil
}

// TableExists reports whether table exists in keyspace.
//
// The lookup is a parameterized query against system_schema.tables.
//
// Parameters:
//   - ctx: Context for cancellation
//   - keyspace: Keyspace name
//   - table: Table name
//
// Returns:
//   - bool: true if at least one catalog row matches
//   - error: a name validation error, a connection error or a query error
func (g *SchemaGuard) TableExists(ctx context.Context, keyspace, table string) (bool, error) {
	if err := ValidateKeyspaceName(keyspace); err != nil {
		return false, err
	}
	if err := ValidateTableName(table); err != nil {
		return false, err
	}

	session, err := g.conn.Session(ctx)
	if err != nil {
		return false, err
	}

	query := session.Query(tableExistsStmt, keyspace, table)
	defer query.Release()

	iter := query.IterContext(ctx)

	var name string
	found := iter.Scan(&name)
	if err := iter.Close(); err != nil {
		return false, fmt.Errorf("cfcassandra: look up table %s: %w", qualifiedName(keyspace, table), err)
	}

	return found, nil
}

// CreateTable creates table in the client's keyspace with the two string
// columns id (primary key) and value.
//
// Creating a table that already exists is a no-op.
//
// Parameters:
//   - ctx: Context for cancellation
//   - table: Table name
//
// Returns:
//   - error: *types.InvalidTableNameError, a connection error or a query error
func (g *SchemaGuard) CreateTable(ctx context.Context, table string) error {
	if err := ValidateTableName(table); err != nil {
		return err
	}

	keyspace := g.conn.Keyspace()
	exists, err := g.TableExists(ctx, keyspace, table)
	if err != nil {
		return err
	}
	if exists {
		g.conn.config.Logger.Debug("table already exists", "keyspace", keyspace, "table", table)
		return nil
	}

	if err := g.exec(ctx, fmt.Sprintf(createTableStmt, qualifiedName(keyspace, table))); err != nil {
		return fmt.Errorf("cfcassandra: create table %s: %w", qualifiedName(keyspace, table), err)
	}

	g.conn.config.Metrics.IncTableCreated()
	g.conn.config.Logger.Info("table created", "keyspace", keyspace, "table", table)

	return nil
}

// DropTable drops table from the client's keyspace.
//
// Dropping a table that does not exist is a no-op.
//
// Parameters:
//   - ctx: Context for cancellation
//   - table: Table name
//
// Returns:
//   - error: *types.InvalidTableNameError, a connection error or a query error
func (g *SchemaGuard) DropTable(ctx context.Context, table string) error {
	if err := ValidateTableName(table); err != nil {
		return err
	}

	keyspace := g.conn.Keyspace()
	exists, err := g.TableExists(ctx, keyspace, table)
	if err != nil {
		return err
	}
	if !exists {
		g.conn.config.Logger.Debug("table does not exist, nothing to drop", "keyspace", keyspace, "table", table)
		return nil
	}

	if err := g.exec(ctx, fmt.Sprintf(dropTableStmt, qualifiedName(keyspace, table))); err != nil {
		return fmt.Errorf("cfcassandra: drop table %s: %w", qualifiedName(keyspace, table), err)
	}

	g.conn.config.Metrics.IncTableDropped()
	g.conn.config.Logger.Info("table dropped", "keyspace", keyspace, "table", table)

	return nil
}

// EnsureExists fails with *types.TableDoesNotExistError unless table exists
// in keyspace. It never creates the table.
//
// Parameters:
//   - ctx: Context for cancellation
//   - keyspace: Keyspace name
//   - table: Table name
//
// Returns:
//   - error: *types.TableDoesNotExistError, a name validation error,
//     a connection error or a query error
func (g *SchemaGuard) EnsureExists(ctx context.Context, keyspace, table string) error {
	exists, err := g.TableExists(ctx, keyspace, table)
	if err != nil {
		return err
	}
	if !exists {
		g.conn.config.Metrics.IncGuardRejected()
		return &types.TableDoesNotExistError{Keyspace: keyspace, Table: table}
	}

	return nil
}

func (g *SchemaGuard) exec(ctx context.Context, stmt string) error {
	session, err := g.conn.Session(ctx)
	if err != nil {
		return err
	}

	query := session.Query(stmt)
	defer query.Release()

	g.conn.config.Logger.Debug("executing schema statement", "stmt", query.Statement())

	return query.ExecContext(ctx)
}
