package cfcassandra

import "github.com/JCL38-ORANGE/cf-cassandra-example-app/types"

// Type aliases for convenience - re-export from types package.
type (
	Consistency      = types.Consistency
	SessionState     = types.SessionState
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
)

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
	LocalOne    = types.LocalOne
)

// Client bundles a ConnectionManager, a SchemaGuard and a KeyValueStore
// sharing one session.
//
// Schema methods (CreateTable, DropTable, TableExists, KeyspaceExists,
// EnsureExists) and data methods (Store, Fetch) are promoted from the
// embedded components.
type Client struct {
	*SchemaGuard
	*KeyValueStore

	conn *ConnectionManager
}

// NewClient creates a client from connection details.
//
// The details are validated immediately; the cluster is not contacted until
// the first operation.
//
// Parameters:
//   - details: Connection details (keyspaceName, login, password, contact-points, ...)
//   - opts: Optional configuration options
//
// Returns:
//   - *Client: A new client
//   - error: Configuration error if details are incomplete or invalid
func NewClient(details ConnectionDetails, opts ...Option) (*Client, error) {
	conn, err := NewConnectionManager(details, opts...)
	if err != nil {
		return nil, err
	}

	guard := NewSchemaGuard(conn)

	return &Client{
		SchemaGuard:   guard,
		KeyValueStore: NewKeyValueStore(guard),
		conn:          conn,
	}, nil
}

// Connection returns the client's connection manager.
func (c *Client) Connection() *ConnectionManager {
	return c.conn
}

// Connected reports whether the session has been established.
// It never triggers a connection.
func (c *Client) Connected() bool {
	return c.conn.Connected()
}

// Keyspace returns the keyspace the client operates on.
func (c *Client) Keyspace() string {
	return c.conn.Keyspace()
}

// Close closes the underlying session. It is safe to call more than once.
func (c *Client) Close() {
	c.conn.Close()
}
