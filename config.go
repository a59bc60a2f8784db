package cfcassandra

import (
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql"
	v1 "github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql/v1"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/internal/logging"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/internal/metrics"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

// ClientConfig holds configuration for cfcassandra clients.
type ClientConfig struct {
	// Connector opens the session. Defaults to the gocql v1 connector.
	Connector cql.Connector

	// Consistency is applied to store and fetch statements.
	Consistency Consistency

	Metrics MetricsCollector
	Logger  types.Logger
}

// DefaultConfig returns a ClientConfig with sensible defaults.
//
// Defaults:
//   - Connector: v1.NewConnector() (github.com/gocql/gocql)
//   - Consistency: Quorum
//   - Metrics and Logger: no-op implementations
//
// Returns:
//   - *ClientConfig: Configuration with default settings
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Connector:   v1.NewConnector(),
		Consistency: Quorum,
		Metrics:     metrics.NewNopMetrics(),
		Logger:      logging.NewNopLogger(),
	}
}

// Option configures a ClientConfig.
type Option func(*ClientConfig)

// WithConnector sets the driver connector used to open the session.
//
// Parameters:
//   - connector: A cql.Connector such as v1.NewConnector() or v2.NewConnector()
//
// Returns:
//   - Option: Configuration option
func WithConnector(connector cql.Connector) Option {
	return func(c *ClientConfig) {
		c.Connector = connector
	}
}

// WithConsistency sets the consistency level for store and fetch.
//
// ANY, EACH_QUORUM, SERIAL and LOCAL_SERIAL are rejected by NewClient with
// types.ErrUnsupportedConsistency.
//
// Parameters:
//   - consistency: The consistency level (e.g., LocalQuorum)
//
// Returns:
//   - Option: Configuration option
func WithConsistency(consistency Consistency) Option {
	return func(c *ClientConfig) {
		c.Consistency = consistency
	}
}

// WithMetrics sets the metrics collector.
//
// If not set, a no-op collector is used that discards all metrics.
// Use contrib/metrics/vm.New() for VictoriaMetrics integration.
//
// Parameters:
//   - collector: The metrics collector implementation
//
// Returns:
//   - Option: Configuration option
//
// Example:
//
//	import vmmetrics "github.com/JCL38-ORANGE/cf-cassandra-example-app/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	client, _ := cfcassandra.NewClient(details,
//	    cfcassandra.WithMetrics(collector),
//	)
func WithMetrics(collector MetricsCollector) Option {
	return func(c *ClientConfig) {
		c.Metrics = collector
	}
}

// WithLogger sets the structured logger.
//
// If not set, a no-op logger is used that discards all messages.
// Use contrib/logging/gokit.New() to log through go-kit/log.
//
// Parameters:
//   - logger: The logger implementation
//
// Returns:
//   - Option: Configuration option
func WithLogger(logger types.Logger) Option {
	return func(c *ClientConfig) {
		c.Logger = logger
	}
}

func buildConfig(opts []Option) (*ClientConfig, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Connector == nil {
		return nil, types.ErrNilConnector
	}
	if err := types.ValidateReadWrite(cfg.Consistency); err != nil {
		return nil, err
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNopMetrics()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}

	return cfg, nil
}
