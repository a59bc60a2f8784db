package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	cfcassandra "github.com/JCL38-ORANGE/cf-cassandra-example-app"
	v1 "github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql/v1"
	v2 "github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql/v2"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

const testVCAP = `{
  "user-provided": [
    {"name": "logs", "label": "user-provided", "tags": [], "credentials": {"url": "syslog://x"}}
  ],
  "cassandra": [
    {
      "name": "kv-db",
      "label": "cassandra",
      "tags": ["nosql"],
      "credentials": {
        "keyspaceName": "vcap_ks",
        "login": "vcap_user",
        "password": "vcap_pw",
        "contact-points": "10.1.0.1,10.1.0.2",
        "port": 9042,
        "ssl": true
      }
    }
  ]
}`

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddConnectionFlags(fs)
	AddServeFlags(fs)
	require.NoError(t, fs.Parse(args))

	return fs
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(envReplacer)

	return v
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VCAP_SERVICES", "")
	t.Setenv("PORT", "")

	cfg, err := Load(newViper(), newFlagSet(t))
	require.NoError(t, err)

	require.Empty(t, cfg.Details)
	require.Equal(t, DriverV1, cfg.Driver)
	require.Equal(t, types.Quorum, cfg.Consistency)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, ":8080", cfg.Listen)
}

func TestLoadFromVCAPServices(t *testing.T) {
	t.Setenv("VCAP_SERVICES", testVCAP)

	cfg, err := Load(newViper(), newFlagSet(t))
	require.NoError(t, err)

	params, err := cfcassandra.ParseConnectionDetails(cfg.Details)
	require.NoError(t, err)
	require.Equal(t, "vcap_ks", params.Keyspace)
	require.Equal(t, "vcap_user", params.Username)
	require.Equal(t, []string{"10.1.0.1", "10.1.0.2"}, params.Hosts)
	require.Equal(t, 9042, params.Port)
	require.True(t, params.SSL)
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("VCAP_SERVICES", testVCAP)
	t.Setenv("CFKV_LOGIN", "env_user")
	t.Setenv("CFKV_KEYSPACE", "env_ks")
	t.Setenv("CFKV_CONNECTION_TIMEOUT", "3")

	fs := newFlagSet(t, "--keyspace=flag_ks", "--port=19042")

	cfg, err := Load(newViper(), fs)
	require.NoError(t, err)

	params, err := cfcassandra.ParseConnectionDetails(cfg.Details)
	require.NoError(t, err)
	require.Equal(t, "flag_ks", params.Keyspace, "flag beats env")
	require.Equal(t, "env_user", params.Username, "env beats VCAP_SERVICES")
	require.Equal(t, "vcap_pw", params.Password, "VCAP_SERVICES fills the rest")
	require.Equal(t, 19042, params.Port)
	require.Equal(t, 3*time.Second, params.ConnectTimeout)
}

func TestLoadListenFromPort(t *testing.T) {
	t.Setenv("PORT", "9999")

	cfg, err := Load(newViper(), newFlagSet(t))
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Listen)

	cfg, err = Load(newViper(), newFlagSet(t, "--listen=127.0.0.1:7000"))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:7000", cfg.Listen)
}

func TestLoadDriverAndConsistency(t *testing.T) {
	cfg, err := Load(newViper(), newFlagSet(t, "--driver=V2", "--consistency=local_one"))
	require.NoError(t, err)
	require.Equal(t, DriverV2, cfg.Driver)
	require.Equal(t, types.LocalOne, cfg.Consistency)

	connector, err := cfg.Connector()
	require.NoError(t, err)
	require.IsType(t, &v2.Connector{}, connector)

	_, err = Load(newViper(), newFlagSet(t, "--driver=v3"))
	require.ErrorIs(t, err, ErrUnknownDriver)

	_, err = Load(newViper(), newFlagSet(t, "--consistency=most"))
	require.Error(t, err)

	for _, level := range []string{"any", "each_quorum", "serial", "LOCAL_SERIAL"} {
		_, err = Load(newViper(), newFlagSet(t, "--consistency="+level))
		require.ErrorIs(t, err, types.ErrUnsupportedConsistency, level)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &Config{Driver: DriverV1, Consistency: types.One}

	connector, err := cfg.Connector()
	require.NoError(t, err)
	require.IsType(t, &v1.Connector{}, connector)

	opts, err := cfg.ClientOptions(cfcassandra.WithLogger(nil))
	require.NoError(t, err)
	require.Len(t, opts, 3)

	applied := cfcassandra.DefaultConfig()
	for _, opt := range opts {
		opt(applied)
	}
	require.Equal(t, types.One, applied.Consistency)
	require.IsType(t, &v1.Connector{}, applied.Connector)

	_, err = (&Config{Driver: "v9"}).ClientOptions()
	require.ErrorIs(t, err, ErrUnknownDriver)
}

func TestLoadInvalidVCAP(t *testing.T) {
	t.Setenv("VCAP_SERVICES", "{not json")

	_, err := Load(newViper(), nil)
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CFKV_LOGIN=dotenv_user\nCFKV_PASSWORD=dotenv_pw\n"), 0o600))

	// Register cleanup for both variables, then clear them so the file applies.
	t.Setenv("CFKV_LOGIN", "")
	t.Setenv("CFKV_PASSWORD", "kept")
	require.NoError(t, os.Unsetenv("CFKV_LOGIN"))

	LoadDotEnv(path, filepath.Join(dir, ".env.missing"))

	require.Equal(t, "dotenv_user", os.Getenv("CFKV_LOGIN"))
	require.Equal(t, "kept", os.Getenv("CFKV_PASSWORD"), "existing variables are not overridden")
}
