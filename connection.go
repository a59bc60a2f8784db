package cfcassandra

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

// ConnectionManager owns the single session of a client.
//
// The session is established lazily on first use and then reused for the
// lifetime of the manager. The lifecycle is an explicit state machine:
//
//	Unconnected -> Connecting -> Connected
//	Unconnected -> Connecting -> Failed
//
// Connected and Failed are terminal. A failed manager keeps returning the
// error it failed with and never dials again; build a new manager to retry.
// Close moves any state to Closed.
//
// Thread Safety: all methods are safe for concurrent use. Concurrent first
// callers of Session share one connection attempt.
type ConnectionManager struct {
	params cql.ClusterParams
	config *ClientConfig

	mu      sync.Mutex // serializes connection attempts and Close
	state   atomic.Int32
	session cql.Session
	err     error
}

// NewConnectionManager validates details and returns an unconnected manager.
//
// No network activity happens here.
//
// Parameters:
//   - details: Connection details (keyspaceName, login, password, contact-points, ...)
//   - opts: Optional configuration options
//
// Returns:
//   - *ConnectionManager: A manager in the Unconnected state
//   - error: Configuration error from ParseConnectionDetails, or ErrNilConnector
func NewConnectionManager(details ConnectionDetails, opts ...Option) (*ConnectionManager, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}

	params, err := ParseConnectionDetails(details)
	if err != nil {
		return nil, err
	}

	m := &ConnectionManager{
		params: params,
		config: cfg,
	}
	m.state.Store(int32(types.SessionUnconnected))

	return m, nil
}

// Cluster returns the driver connection parameters derived from the
// connection details. Each call returns a fresh copy.
func (m *ConnectionManager) Cluster() cql.ClusterParams {
	params := m.params
	params.Hosts = slices.Clone(m.params.Hosts)

	return params
}

// Keyspace returns the keyspace all operations target.
func (m *ConnectionManager) Keyspace() string {
	return m.params.Keyspace
}

// State returns the current lifecycle state without blocking.
func (m *ConnectionManager) State() types.SessionState {
	return types.SessionState(m.state.Load())
}

// Connected reports whether a session has been established.
//
// It never triggers a connection attempt.
func (m *ConnectionManager) Connected() bool {
	return m.State() == types.SessionConnected
}

// Session returns the live session, connecting on first use.
//
// If ctx ends before the connection attempt finishes, the manager returns to
// Unconnected so a later call can try again; only driver failures are
// terminal.
//
// Parameters:
//   - ctx: Context bounding the connection attempt
//
// Returns:
//   - cql.Session: The shared session
//   - error: *types.InvalidCredentialsError, *types.UnavailableError,
//     ErrClientClosed, or the context error
func (m *ConnectionManager) Session(ctx context.Context) (cql.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.State() {
	case types.SessionConnected:
		return m.session, nil
	case types.SessionFailed:
		return nil, m.err
	case types.SessionClosed:
		return nil, types.ErrClientClosed
	default:
	}

	return m.connect(ctx)
}

// connect must be called with m.mu held.
func (m *ConnectionManager) connect(ctx context.Context) (cql.Session, error) {
	logger := m.config.Logger
	collector := m.config.Metrics
	params := m.Cluster()

	m.state.Store(int32(types.SessionConnecting))
	logger.Debug("connecting to cluster",
		"hosts", params.Hosts,
		"keyspace", params.Keyspace,
		"ssl", params.SSL,
		"timeout", params.ConnectTimeout,
	)

	collector.IncConnectTotal()
	start := time.Now()
	session, err := m.config.Connector.Connect(ctx, params)
	collector.ObserveConnectDuration(time.Since(start).Seconds())

	if err == nil && session == nil {
		err = fmt.Errorf("%w: connector returned no session", cql.ErrNoHostAvailable)
	}

	if err != nil {
		collector.IncConnectError()

		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			m.state.Store(int32(types.SessionUnconnected))
			logger.Warn("connection attempt abandoned", "error", err)

			return nil, fmt.Errorf("cfcassandra: connect: %w", err)
		}

		m.err = connectError(params, err)
		m.state.Store(int32(types.SessionFailed))
		logger.Error("connection failed", "hosts", params.Hosts, "error", m.err)

		return nil, m.err
	}

	m.session = session
	m.state.Store(int32(types.SessionConnected))
	logger.Info("connected to cluster", "hosts", params.Hosts, "keyspace", params.Keyspace)

	return session, nil
}

// Close closes the session if one was established.
//
// Close is idempotent. Afterwards Session returns ErrClientClosed.
func (m *ConnectionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.State() == types.SessionClosed {
		return
	}
	if m.session != nil {
		m.session.Close()
		m.session = nil
	}
	m.state.Store(int32(types.SessionClosed))
	m.config.Logger.Debug("connection closed")
}

// connectError maps a connector error onto the typed connection errors.
func connectError(params cql.ClusterParams, err error) error {
	var credErr *types.InvalidCredentialsError
	var unavailableErr *types.UnavailableError
	if errors.As(err, &credErr) || errors.As(err, &unavailableErr) {
		return err
	}

	if errors.Is(err, cql.ErrAuthentication) {
		return &types.InvalidCredentialsError{Username: params.Username, Cause: err}
	}

	return &types.UnavailableError{Hosts: params.Hosts, Cause: err}
}
