// Package config assembles connection details and process settings from
// command line flags, CFKV_* environment variables, .env files and the
// Cloud Foundry VCAP_SERVICES binding.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	cfcassandra "github.com/JCL38-ORANGE/cf-cassandra-example-app"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql"
	v1 "github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql/v1"
	v2 "github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql/v2"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

// EnvPrefix is the prefix of environment variables, e.g. CFKV_CONTACT_POINTS.
const EnvPrefix = "cfkv"

// Flag names. Each is also readable from CFKV_<NAME> with dashes replaced
// by underscores.
const (
	FlagContactPoints     = "contact-points"
	FlagKeyspace          = "keyspace"
	FlagLogin             = "login"
	FlagPassword          = "password"
	FlagPort              = "port"
	FlagSSL               = "ssl"
	FlagConnectionTimeout = "connection-timeout"
	FlagServiceName       = "service-name"
	FlagDriver            = "driver"
	FlagConsistency       = "consistency"
	FlagLogLevel          = "log-level"
	FlagListen            = "listen"
)

const (
	keyVCAPServices = "vcap-services"
	keyHTTPPort     = "http-port"

	// DriverV1 selects github.com/gocql/gocql.
	DriverV1 = "v1"
	// DriverV2 selects github.com/apache/cassandra-gocql-driver/v2.
	DriverV2 = "v2"
)

// flagDetailKeys maps connection flags onto ConnectionDetails keys.
var flagDetailKeys = []struct {
	flag string
	key  string
}{
	{FlagContactPoints, cfcassandra.KeyContactPoints},
	{FlagKeyspace, cfcassandra.KeyKeyspaceName},
	{FlagLogin, cfcassandra.KeyLogin},
	{FlagPassword, cfcassandra.KeyPassword},
	{FlagPort, cfcassandra.KeyPort},
	{FlagSSL, cfcassandra.KeySSL},
	{FlagConnectionTimeout, cfcassandra.KeyConnectionTimeout},
}

// envReplacer maps flag names onto environment variable suffixes.
var envReplacer = strings.NewReplacer("-", "_")

// ErrUnknownDriver is returned for a --driver value other than v1 or v2.
var ErrUnknownDriver = errors.New("config: unknown driver")

// Config is the resolved process configuration.
type Config struct {
	// Details are the connection details handed to cfcassandra.NewClient.
	Details cfcassandra.ConnectionDetails

	// Driver is DriverV1 or DriverV2.
	Driver string

	// Consistency applies to store and fetch.
	Consistency types.Consistency

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Listen is the HTTP listen address for the serve command.
	Listen string
}

// LoadDotEnv loads environment files. Missing files are skipped and
// variables already present in the environment are never overridden.
func LoadDotEnv(files ...string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// New loads .env and .env.local and returns a viper instance reading
// CFKV_* environment variables.
func New() *viper.Viper {
	LoadDotEnv(".env", ".env.local")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	return v
}

// AddConnectionFlags registers the connection flags on fs.
func AddConnectionFlags(fs *pflag.FlagSet) {
	fs.String(FlagContactPoints, "", "Comma-separated Cassandra contact points (host or host:port)")
	fs.String(FlagKeyspace, "", "Keyspace all tables live in")
	fs.String(FlagLogin, "", "Cassandra user name")
	fs.String(FlagPassword, "", "Cassandra password")
	fs.Int(FlagPort, 0, "Native transport port (0 uses the driver default)")
	fs.Bool(FlagSSL, false, "Enable TLS to the cluster")
	fs.String(FlagConnectionTimeout, "", "Initial connection timeout, in seconds or as a duration (default 10s)")
	fs.String(FlagServiceName, "", "Name of the bound Cloud Foundry service instance to use")
	fs.String(FlagDriver, DriverV1, "CQL driver: v1 (gocql/gocql) or v2 (apache/cassandra-gocql-driver)")
	fs.String(FlagConsistency, "quorum", "Consistency level for store and fetch")
	fs.String(FlagLogLevel, "info", "Log level (debug, info, warn, error)")
}

// AddServeFlags registers the HTTP server flags on fs.
func AddServeFlags(fs *pflag.FlagSet) {
	fs.String(FlagListen, "", "HTTP listen address (default :$PORT, or :8080)")
}

// Load resolves the configuration.
//
// Connection details start from the VCAP_SERVICES credentials, if any, and
// are then overridden key by key by whatever was set through flags or
// CFKV_* variables. Flags win over the environment.
//
// Parameters:
//   - v: Viper instance from New
//   - fs: Flag set to bind, or nil
//
// Returns:
//   - *Config: The resolved configuration
//   - error: VCAP_SERVICES, driver or consistency errors
func Load(v *viper.Viper, fs *pflag.FlagSet) (*Config, error) {
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, err
		}
	}
	if err := v.BindEnv(keyVCAPServices, "VCAP_SERVICES"); err != nil {
		return nil, err
	}
	if err := v.BindEnv(keyHTTPPort, "PORT"); err != nil {
		return nil, err
	}

	details := cfcassandra.ConnectionDetails{}
	if raw := strings.TrimSpace(v.GetString(keyVCAPServices)); raw != "" {
		creds, err := ParseVCAPServices(raw, v.GetString(FlagServiceName))
		if err != nil {
			return nil, err
		}
		details = creds
	}

	for _, m := range flagDetailKeys {
		if v.IsSet(m.flag) {
			details[m.key] = v.Get(m.flag)
		}
	}

	cfg := &Config{
		Details:  details,
		Driver:   strings.ToLower(stringOr(v, FlagDriver, DriverV1)),
		LogLevel: stringOr(v, FlagLogLevel, "info"),
		Listen:   v.GetString(FlagListen),
	}

	if cfg.Driver != DriverV1 && cfg.Driver != DriverV2 {
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, cfg.Driver)
	}

	consistency, err := types.ParseConsistency(stringOr(v, FlagConsistency, "quorum"))
	if err == nil {
		err = types.ValidateReadWrite(consistency)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Consistency = consistency

	if cfg.Listen == "" {
		cfg.Listen = ":8080"
		if port := v.GetString(keyHTTPPort); port != "" {
			cfg.Listen = ":" + port
		}
	}

	return cfg, nil
}

func stringOr(v *viper.Viper, key, fallback string) string {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		return s
	}

	return fallback
}

// Connector returns the connector for the configured driver.
func (c *Config) Connector() (cql.Connector, error) {
	switch c.Driver {
	case DriverV1, "":
		return v1.NewConnector(), nil
	case DriverV2:
		return v2.NewConnector(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, c.Driver)
	}
}

// ClientOptions returns the cfcassandra options derived from the
// configuration, followed by extra.
func (c *Config) ClientOptions(extra ...cfcassandra.Option) ([]cfcassandra.Option, error) {
	connector, err := c.Connector()
	if err != nil {
		return nil, err
	}

	opts := []cfcassandra.Option{
		cfcassandra.WithConnector(connector),
		cfcassandra.WithConsistency(c.Consistency),
	}

	return append(opts, extra...), nil
}
