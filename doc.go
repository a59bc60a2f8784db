// Package cfcassandra provides a minimal key-value access layer on top of
// Apache Cassandra and other CQL-compatible clusters such as ScyllaDB.
//
// A Client manages one lazily established session, guards every operation
// with schema checks, and stores string values under string keys in
// two-column tables (id, value) of a single keyspace.
//
// # Key Features
//
//   - Lazy Session: The cluster is dialed on first use, exactly once
//   - Schema Guard: Table names are validated before any statement is issued,
//     and store/fetch fail fast on tables that do not exist
//   - Idempotent DDL: CreateTable and DropTable are no-ops when there is
//     nothing to do
//   - Typed Errors: Configuration problems and usage problems are distinct
//     error kinds
//
// # Basic Usage
//
//	client, err := cfcassandra.NewClient(cfcassandra.ConnectionDetails{
//	    "keyspaceName":   "app",
//	    "login":          "cassandra",
//	    "password":       "cassandra",
//	    "contact-points": "10.0.0.1,10.0.0.2",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := client.CreateTable(ctx, "settings"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := client.Store(ctx, "settings", "theme", "dark"); err != nil {
//	    log.Fatal(err)
//	}
//	theme, err := client.Fetch(ctx, "settings", "theme")
//
// # Session Lifecycle
//
// The ConnectionManager moves through Unconnected, Connecting, and then
// either Connected or Failed. Both outcomes are final: a failed manager keeps
// returning its error and never dials again. Construct a new Client to retry.
//
// # Error Handling
//
// Every error kind is a struct type in the types package that also matches a
// sentinel, so both errors.As and errors.Is work:
//
//   - types.InvalidCredentialsError / types.ErrInvalidCredentials
//   - types.UnavailableError / types.ErrUnavailable
//   - types.InvalidTableNameError / types.ErrInvalidTableName
//   - types.InvalidKeyspaceNameError / types.ErrInvalidKeyspaceName
//   - types.TableDoesNotExistError / types.ErrTableDoesNotExist
//   - types.KeyNotFoundError / types.ErrKeyNotFound
//   - types.MissingConfigError / types.ErrMissingConfig
//   - types.InvalidConfigError / types.ErrInvalidConfig
//
// A common pattern is to create a table on demand:
//
//	err := client.Store(ctx, table, key, value)
//	if errors.Is(err, types.ErrTableDoesNotExist) {
//	    if err = client.CreateTable(ctx, table); err == nil {
//	        err = client.Store(ctx, table, key, value)
//	    }
//	}
//
// Nothing is retried internally.
//
// # Drivers
//
// The default connector uses github.com/gocql/gocql. The Apache driver is
// available through adapter/cql/v2:
//
//	client, err := cfcassandra.NewClient(details,
//	    cfcassandra.WithConnector(v2.NewConnector()),
//	)
package cfcassandra
