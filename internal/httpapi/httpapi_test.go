package httpapi_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/VictoriaMetrics/metrics"
	"github.com/stretchr/testify/require"

	cfcassandra "github.com/JCL38-ORANGE/cf-cassandra-example-app"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/contrib/metrics/vm"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/internal/httpapi"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/test/testutil"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

type apiEnv struct {
	server    *httptest.Server
	client    *cfcassandra.Client
	session   *testutil.MockCQLSession
	connector *testutil.MockConnector
	logger    *testutil.RecordingLogger
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()

	env := &apiEnv{
		session: testutil.NewMockCQLSession("app"),
		logger:  testutil.NewRecordingLogger(),
	}
	env.connector = testutil.NewMockConnector(env.session)

	details := cfcassandra.ConnectionDetails{
		cfcassandra.KeyKeyspaceName:  "app",
		cfcassandra.KeyLogin:         "user",
		cfcassandra.KeyPassword:      "secret",
		cfcassandra.KeyContactPoints: "10.0.0.1",
	}

	var client *cfcassandra.Client
	collector := vm.New(
		vm.WithMetricsSet(metrics.NewSet()),
		vm.WithConnectedFunc(func() bool { return client != nil && client.Connected() }),
	)

	client, err := cfcassandra.NewClient(details,
		cfcassandra.WithConnector(env.connector),
		cfcassandra.WithMetrics(collector),
	)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	env.client = client

	handler := httpapi.New(client,
		httpapi.WithLogger(env.logger),
		httpapi.WithMetricsHandler(http.HandlerFunc(collector.Handler)),
	)
	env.server = httptest.NewServer(handler)
	t.Cleanup(env.server.Close)

	return env
}

func (e *apiEnv) do(t *testing.T, method, path, body string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(t.Context(), method, e.server.URL+path, reader)
	require.NoError(t, err)

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(data)
}

func TestTableLifecycle(t *testing.T) {
	env := newAPIEnv(t)

	status, _ := env.do(t, http.MethodPut, "/tables/users", "")
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.session.HasTable("app", "users"))

	status, _ = env.do(t, http.MethodPut, "/tables/users", "")
	require.Equal(t, http.StatusCreated, status, "create is idempotent")

	status, _ = env.do(t, http.MethodDelete, "/tables/users", "")
	require.Equal(t, http.StatusNoContent, status)
	require.False(t, env.session.HasTable("app", "users"))

	status, _ = env.do(t, http.MethodDelete, "/tables/users", "")
	require.Equal(t, http.StatusNoContent, status, "drop of a missing table is a no-op")
}

func TestStoreAndFetch(t *testing.T) {
	env := newAPIEnv(t)
	env.session.AddTable("app", "users")

	status, _ := env.do(t, http.MethodPut, "/tables/users/keys/alice", "hello world")
	require.Equal(t, http.StatusCreated, status)

	status, body := env.do(t, http.MethodGet, "/tables/users/keys/alice", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "hello world", body)

	status, _ = env.do(t, http.MethodPut, "/tables/users/keys/alice", "")
	require.Equal(t, http.StatusCreated, status)

	status, body = env.do(t, http.MethodGet, "/tables/users/keys/alice", "")
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body, "empty values round trip")
}

func TestStoreAndFetchEncodedKey(t *testing.T) {
	env := newAPIEnv(t)
	env.session.AddTable("app", "users")

	status, _ := env.do(t, http.MethodPut, "/tables/users/keys/a%2Fb", "slash")
	require.Equal(t, http.StatusCreated, status)

	status, _ = env.do(t, http.MethodPut, "/tables/users/keys/hello%20world", "space")
	require.Equal(t, http.StatusCreated, status)

	rows := env.session.Rows("app", "users")
	require.Equal(t, "slash", rows["a/b"])
	require.Equal(t, "space", rows["hello world"])

	status, body := env.do(t, http.MethodGet, "/tables/users/keys/a%2Fb", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "slash", body)

	status, _ = env.do(t, http.MethodGet, "/tables/users/keys/a/b", "")
	require.Equal(t, http.StatusNotFound, status, "a raw slash does not match the key route")
}

func TestErrorStatus(t *testing.T) {
	env := newAPIEnv(t)
	env.session.AddTable("app", "users")

	status, _ := env.do(t, http.MethodPut, "/tables/bad-name/keys/k", "v")
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPut, "/tables/missing/keys/k", "v")
	require.Equal(t, http.StatusNotFound, status)

	status, body := env.do(t, http.MethodGet, "/tables/users/keys/nobody", "")
	require.Equal(t, http.StatusNotFound, status)
	require.Contains(t, body, "nobody")

	status, _ = env.do(t, http.MethodPost, "/tables/users", "")
	require.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestStoreValueTooLarge(t *testing.T) {
	env := newAPIEnv(t)
	env.session.AddTable("app", "users")

	status, _ := env.do(t, http.MethodPut, "/tables/users/keys/big", strings.Repeat("x", httpapi.MaxValueSize+1))
	require.Equal(t, http.StatusRequestEntityTooLarge, status)
	require.Empty(t, env.session.Rows("app", "users"))
}

func TestServerErrorsAreLogged(t *testing.T) {
	env := newAPIEnv(t)
	env.connector.Err = fmt.Errorf("%w: dial tcp: connection refused", cql.ErrNoHostAvailable)

	status, _ := env.do(t, http.MethodPut, "/tables/users", "")
	require.Equal(t, http.StatusServiceUnavailable, status)
	require.True(t, env.logger.Has("error", "request failed"))
}

func TestHealthz(t *testing.T) {
	env := newAPIEnv(t)

	status, _ := env.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusServiceUnavailable, status)
	require.Equal(t, 0, env.connector.Calls(), "health checks never connect")

	_, err := env.client.TableExists(t.Context(), "app", "users")
	require.NoError(t, err)

	status, body := env.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newAPIEnv(t)
	env.session.AddTable("app", "users")

	status, _ := env.do(t, http.MethodPut, "/tables/users/keys/k", "v")
	require.Equal(t, http.StatusCreated, status)

	status, body := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "cfkv_store_total 1")
	require.Contains(t, body, "cfkv_session_connected 1")
}

func TestMetricsEndpointDisabled(t *testing.T) {
	handler := httpapi.New(nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&types.InvalidTableNameError{Name: "x!"}, http.StatusBadRequest},
		{&types.InvalidKeyspaceNameError{Name: "x!"}, http.StatusBadRequest},
		{&types.TableDoesNotExistError{Keyspace: "ks", Table: "t"}, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", &types.KeyNotFoundError{Key: "k"}), http.StatusNotFound},
		{&types.InvalidCredentialsError{Username: "u", Cause: errors.New("bad")}, http.StatusBadGateway},
		{&types.UnavailableError{Hosts: []string{"h"}, Cause: errors.New("down")}, http.StatusServiceUnavailable},
		{fmt.Errorf("cfcassandra: fetch: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, httpapi.StatusCode(tt.err), tt.err.Error())
	}
}
