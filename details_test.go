package cfcassandra

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

func testDetails() ConnectionDetails {
	return ConnectionDetails{
		KeyKeyspaceName:  "app",
		KeyLogin:         "user",
		KeyPassword:      "secret",
		KeyContactPoints: "10.0.0.1, 10.0.0.2 ,,10.0.0.3:9142",
	}
}

func withDetail(key string, value any) ConnectionDetails {
	d := testDetails()
	d[key] = value

	return d
}

func TestParseConnectionDetailsDefaults(t *testing.T) {
	params, err := ParseConnectionDetails(testDetails())
	require.NoError(t, err)

	require.Equal(t, "app", params.Keyspace)
	require.Equal(t, "user", params.Username)
	require.Equal(t, "secret", params.Password)
	require.Equal(t, []string{"10.0.0.1", "10.0.0.2", "10.0.0.3:9142"}, params.Hosts)
	require.Equal(t, 0, params.Port)
	require.False(t, params.SSL)
	require.Equal(t, DefaultConnectionTimeout, params.ConnectTimeout)
}

func TestParseConnectionDetailsJSONShapes(t *testing.T) {
	details := ConnectionDetails{
		KeyKeyspaceName:      "app",
		KeyLogin:             "user",
		KeyPassword:          "secret",
		KeyContactPoints:     []any{"node-1", " node-2 "},
		KeyPort:              float64(9042),
		KeySSL:               true,
		KeyConnectionTimeout: float64(3),
	}

	params, err := ParseConnectionDetails(details)
	require.NoError(t, err)
	require.Equal(t, []string{"node-1", "node-2"}, params.Hosts)
	require.Equal(t, 9042, params.Port)
	require.True(t, params.SSL)
	require.Equal(t, 3*time.Second, params.ConnectTimeout)
}

func TestParseConnectionDetailsStringValues(t *testing.T) {
	d := testDetails()
	d[KeyPort] = "19042"
	d[KeySSL] = "true"
	d[KeyConnectionTimeout] = "2500ms"

	params, err := ParseConnectionDetails(d)
	require.NoError(t, err)
	require.Equal(t, 19042, params.Port)
	require.True(t, params.SSL)
	require.Equal(t, 2500*time.Millisecond, params.ConnectTimeout)
}

func TestParseConnectionDetailsPortIsDecimal(t *testing.T) {
	for value, want := range map[string]int{
		"010":      10,
		"09042":    9042,
		" 9142 ":   9142,
		"0":        0,
		"":         0,
		"00019042": 19042,
	} {
		params, err := ParseConnectionDetails(withDetail(KeyPort, value))
		require.NoError(t, err, "port %q", value)
		require.Equal(t, want, params.Port, "port %q", value)
	}

	for _, value := range []string{"0x2382", "0o17", "0b101", "9042.0", "1_000"} {
		_, err := ParseConnectionDetails(withDetail(KeyPort, value))
		require.ErrorIs(t, err, types.ErrInvalidConfig, "port %q", value)
	}
}

func TestParseConnectionDetailsTimeout(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  time.Duration
	}{
		{name: "seconds int", key: KeyConnectionTimeout, value: 5, want: 5 * time.Second},
		{name: "seconds string", key: KeyConnectionTimeout, value: "7", want: 7 * time.Second},
		{name: "fractional seconds", key: KeyConnectionTimeout, value: 1.5, want: 1500 * time.Millisecond},
		{name: "duration", key: KeyConnectionTimeout, value: 4 * time.Second, want: 4 * time.Second},
		{name: "zero means default", key: KeyConnectionTimeout, value: 0, want: DefaultConnectionTimeout},
		{name: "blank means default", key: KeyConnectionTimeout, value: " ", want: DefaultConnectionTimeout},
		{name: "snake case alias", key: "connection_timeout", value: 20, want: 20 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := ParseConnectionDetails(withDetail(tt.key, tt.value))
			require.NoError(t, err)
			require.Equal(t, tt.want, params.ConnectTimeout)
		})
	}
}

func TestParseConnectionDetailsTimeoutPrefersCamelCase(t *testing.T) {
	d := testDetails()
	d[KeyConnectionTimeout] = 2
	d["connection_timeout"] = 30

	params, err := ParseConnectionDetails(d)
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, params.ConnectTimeout)
}

func TestParseConnectionDetailsMissing(t *testing.T) {
	for _, key := range []string{KeyKeyspaceName, KeyLogin, KeyPassword, KeyContactPoints} {
		t.Run(key, func(t *testing.T) {
			d := testDetails()
			delete(d, key)

			_, err := ParseConnectionDetails(d)
			require.ErrorIs(t, err, types.ErrMissingConfig)

			var missing *types.MissingConfigError
			require.True(t, errors.As(err, &missing))
			require.Equal(t, key, missing.Key)
		})
	}
}

func TestParseConnectionDetailsEmptyValues(t *testing.T) {
	for _, key := range []string{KeyKeyspaceName, KeyLogin, KeyContactPoints} {
		_, err := ParseConnectionDetails(withDetail(key, "  "))
		require.ErrorIs(t, err, types.ErrMissingConfig, key)
	}

	_, err := ParseConnectionDetails(withDetail(KeyContactPoints, " , ,"))
	require.ErrorIs(t, err, types.ErrMissingConfig)

	// An empty password is a valid secret as long as the key is present.
	params, err := ParseConnectionDetails(withDetail(KeyPassword, ""))
	require.NoError(t, err)
	require.Empty(t, params.Password)
}

func TestParseConnectionDetailsInvalidKeyspace(t *testing.T) {
	_, err := ParseConnectionDetails(withDetail(KeyKeyspaceName, "my-keyspace"))
	require.ErrorIs(t, err, types.ErrInvalidKeyspaceName)

	var nameErr *types.InvalidKeyspaceNameError
	require.True(t, errors.As(err, &nameErr))
	require.Equal(t, "my-keyspace", nameErr.Name)
}

func TestParseConnectionDetailsInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{key: KeyPort, value: "not-a-port"},
		{key: KeyPort, value: 70000},
		{key: KeyPort, value: -1},
		{key: KeySSL, value: "maybe"},
		{key: KeyConnectionTimeout, value: "soon"},
		{key: KeyConnectionTimeout, value: -5},
		{key: KeyConnectionTimeout, value: "NaN"},
		{key: KeyContactPoints, value: map[string]int{"a": 1}},
	}

	for _, tt := range tests {
		_, err := ParseConnectionDetails(withDetail(tt.key, tt.value))
		require.ErrorIs(t, err, types.ErrInvalidConfig, "%s=%v", tt.key, tt.value)

		var invalid *types.InvalidConfigError
		require.True(t, errors.As(err, &invalid))
		require.Equal(t, tt.key, invalid.Key)
	}
}

func TestParseConnectionDetailsTimeoutOutOfRange(t *testing.T) {
	for _, value := range []any{1e10, "1e10", math.MaxFloat64, uint64(math.MaxUint64)} {
		_, err := ParseConnectionDetails(withDetail(KeyConnectionTimeout, value))
		require.ErrorIs(t, err, types.ErrInvalidConfig, "%v", value)
		require.ErrorIs(t, err, errOutOfRange, "%v", value)
		require.NotErrorIs(t, err, errNegative, "%v", value)
	}

	params, err := ParseConnectionDetails(withDetail(KeyConnectionTimeout, 86400))
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, params.ConnectTimeout)
}

func TestParseConnectionDetailsIgnoresUnknownKeys(t *testing.T) {
	params, err := ParseConnectionDetails(withDetail("dc", "eu-west"))
	require.NoError(t, err)
	require.Equal(t, "app", params.Keyspace)
}
