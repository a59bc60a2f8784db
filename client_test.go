package cfcassandra

import (
	"testing"

	"github.com/stretchr/testify/require"

	v1 "github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql/v1"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/internal/logging"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/internal/metrics"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/test/testutil"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.IsType(t, &v1.Connector{}, cfg.Connector)
	require.Equal(t, Quorum, cfg.Consistency)
	require.IsType(t, &metrics.NopMetrics{}, cfg.Metrics)
	require.IsType(t, &logging.NopLogger{}, cfg.Logger)
}

func TestNilLoggerAndMetricsFallBackToNop(t *testing.T) {
	cfg, err := buildConfig([]Option{WithLogger(nil), WithMetrics(nil)})
	require.NoError(t, err)
	require.NotNil(t, cfg.Logger)
	require.NotNil(t, cfg.Metrics)
}

func TestNewClientDoesNotConnect(t *testing.T) {
	connector := testutil.NewMockConnector(testutil.NewMockCQLSession("app"))

	client, err := NewClient(testDetails(), WithConnector(connector))
	require.NoError(t, err)
	defer client.Close()

	require.Equal(t, "app", client.Keyspace())
	require.False(t, client.Connected())
	require.Zero(t, connector.Calls())
	require.Same(t, client.conn, client.Connection())
}

func TestNewClientInvalidDetails(t *testing.T) {
	d := testDetails()
	delete(d, KeyLogin)

	client, err := NewClient(d)
	require.Nil(t, client)
	require.ErrorIs(t, err, types.ErrMissingConfig)
}

func TestNewClientRejectsUnsupportedConsistency(t *testing.T) {
	for _, c := range []types.Consistency{types.Any, types.EachQuorum, types.Serial, types.LocalSerial, types.Consistency(0x42)} {
		client, err := NewClient(testDetails(), WithConsistency(c))
		require.Nil(t, client, c.String())
		require.ErrorIs(t, err, types.ErrUnsupportedConsistency, c.String())
	}

	client, err := NewClient(testDetails(), WithConsistency(LocalOne))
	require.NoError(t, err)
	client.Close()
}

func TestClientConnectsOnFirstOperation(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.client.CreateTable(t.Context(), "users"))
	require.True(t, env.client.Connected())
	require.Equal(t, 1, env.connector.Calls())
	require.Equal(t, types.SessionConnected, env.client.Connection().State())
}

func TestClientClose(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.client.CreateTable(t.Context(), "users"))

	env.client.Close()
	env.client.Close()

	require.True(t, env.session.IsClosed())
	err := env.client.Store(t.Context(), "users", "k", "v")
	require.ErrorIs(t, err, types.ErrClientClosed)
}

func TestClientLogsThroughConfiguredLogger(t *testing.T) {
	logger := testutil.NewRecordingLogger()
	env := newTestEnv(t, WithLogger(logger))

	require.NoError(t, env.client.CreateTable(t.Context(), "users"))
	require.True(t, logger.Has("info", "connected to cluster"))
	require.True(t, logger.Has("info", "table created"))
}
