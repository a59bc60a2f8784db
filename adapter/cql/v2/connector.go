package v2

import (
	"context"

	gocql "github.com/apache/cassandra-gocql-driver/v2"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql"
)

// Connector opens Apache driver sessions from cql.ClusterParams.
type Connector struct {
	hostVerification bool
	tweaks           []func(*gocql.ClusterConfig)
}

// Compile-time assertion that Connector implements cql.Connector.
var _ cql.Connector = (*Connector)(nil)

// ConnectorOption configures a Connector.
type ConnectorOption func(*Connector)

// WithHostVerification enables TLS host name verification when SSL is on.
func WithHostVerification(enabled bool) ConnectorOption {
	return func(c *Connector) {
		c.hostVerification = enabled
	}
}

// WithClusterConfig registers a hook that can adjust the cluster
// configuration right before the session is created.
func WithClusterConfig(fn func(*gocql.ClusterConfig)) ConnectorOption {
	return func(c *Connector) {
		if fn != nil {
			c.tweaks = append(c.tweaks, fn)
		}
	}
}

// NewConnector creates an Apache driver connector.
//
// Example:
//
//	client, err := cfcassandra.NewClient(details,
//	    cfcassandra.WithConnector(v2.NewConnector()),
//	)
func NewConnector(opts ...ConnectorOption) *Connector {
	c := &Connector{}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ClusterConfig returns the cluster configuration Connect would use.
func (c *Connector) ClusterConfig(params cql.ClusterParams) *gocql.ClusterConfig {
	cluster := NewClusterConfig(params)
	if cluster.SslOpts != nil {
		cluster.SslOpts.EnableHostVerification = c.hostVerification
	}
	for _, fn := range c.tweaks {
		fn(cluster)
	}

	return cluster
}

type dialResult struct {
	session *gocql.Session
	err     error
}

// Connect opens a session against params.Hosts.
//
// When ctx ends before the driver finishes, Connect returns ctx.Err() and the
// late session is closed in the background.
func (c *Connector) Connect(ctx context.Context, params cql.ClusterParams) (cql.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cluster := c.ClusterConfig(params)

	done := make(chan dialResult, 1)
	go func() {
		session, err := cluster.CreateSession()
		done <- dialResult{session: session, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, cql.ClassifyConnectError(res.err)
		}

		return NewSession(res.session), nil
	case <-ctx.Done():
		go func() {
			if res := <-done; res.session != nil {
				res.session.Close()
			}
		}()

		return nil, ctx.Err()
	}
}
