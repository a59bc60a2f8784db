package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	cfcassandra "github.com/JCL38-ORANGE/cf-cassandra-example-app"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/test/testutil"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

var connectionArgs = []string{"--keyspace=app", "--contact-points=10.0.0.1", "--login=user", "--password=secret"}

func run(t *testing.T, ctx context.Context, session *testutil.MockCQLSession, args ...string) (string, error) {
	t.Helper()
	t.Setenv("VCAP_SERVICES", "")

	var out, errOut bytes.Buffer
	root := newRootCmd(cfcassandra.WithConnector(testutil.NewMockConnector(session)))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, connectionArgs...))

	err := root.ExecuteContext(ctx)

	return out.String(), err
}

func TestVersion(t *testing.T) {
	t.Setenv("VCAP_SERVICES", "{broken")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Equal(t, "cf-cassandra-example-app v"+Version+"\n", out.String())
}

func TestKVCommands(t *testing.T) {
	session := testutil.NewMockCQLSession("app")

	out, err := run(t, t.Context(), session, "create-table", "users")
	require.NoError(t, err)
	require.Equal(t, "table app.users is ready\n", out)
	require.True(t, session.HasTable("app", "users"))

	out, err = run(t, t.Context(), session, "store", "users", "alice", "hello")
	require.NoError(t, err)
	require.Equal(t, "stored successfully\n", out)

	out, err = run(t, t.Context(), session, "fetch", "users", "alice")
	require.NoError(t, err)
	require.Equal(t, "hello\n", out)

	_, err = run(t, t.Context(), session, "fetch", "users", "bob")
	require.ErrorIs(t, err, types.ErrKeyNotFound)

	out, err = run(t, t.Context(), session, "drop-table", "users")
	require.NoError(t, err)
	require.Equal(t, "table app.users dropped\n", out)

	_, err = run(t, t.Context(), session, "store", "users", "alice", "hello")
	require.ErrorIs(t, err, types.ErrTableDoesNotExist)
}

func TestKVCommandArgs(t *testing.T) {
	session := testutil.NewMockCQLSession("app")

	_, err := run(t, t.Context(), session, "store", "users", "alice")
	require.Error(t, err)
	require.Empty(t, session.Statements())
}

func TestMissingConnectionDetails(t *testing.T) {
	t.Setenv("VCAP_SERVICES", "")

	root := newRootCmd(cfcassandra.WithConnector(testutil.NewMockConnector(nil)))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"fetch", "users", "alice", "--contact-points=10.0.0.1"})

	require.ErrorIs(t, root.Execute(), types.ErrMissingConfig)
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := run(t, ctx, testutil.NewMockCQLSession("app"), "serve", "--listen=127.0.0.1:0")
	require.NoError(t, err)
}
