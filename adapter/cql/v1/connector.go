package v1

import (
	"context"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql"
	"github.com/gocql/gocql"
)

// Connector opens gocql v1 sessions from cql.ClusterParams.
type Connector struct {
	hostVerification bool
	caPath           string
	tweaks           []func(*gocql.ClusterConfig)
}

// Compile-time assertion that Connector implements cql.Connector.
var _ cql.Connector = (*Connector)(nil)

// ConnectorOption configures a Connector.
type ConnectorOption func(*Connector)

// WithHostVerification enables TLS host name verification when SSL is on.
//
// Service brokers commonly hand out node addresses that do not match the
// certificate names, so verification is off unless requested.
func WithHostVerification(enabled bool) ConnectorOption {
	return func(c *Connector) {
		c.hostVerification = enabled
	}
}

// WithCAPath sets a CA bundle used to verify node certificates when SSL is on.
func WithCAPath(path string) ConnectorOption {
	return func(c *Connector) {
		c.caPath = path
	}
}

// WithClusterConfig registers a hook that can adjust the gocql cluster
// configuration right before the session is created.
//
// Example:
//
//	connector := v1.NewConnector(v1.WithClusterConfig(func(c *gocql.ClusterConfig) {
//	    c.NumConns = 4
//	}))
func WithClusterConfig(fn func(*gocql.ClusterConfig)) ConnectorOption {
	return func(c *Connector) {
		if fn != nil {
			c.tweaks = append(c.tweaks, fn)
		}
	}
}

// NewConnector creates a gocql v1 connector.
//
// Parameters:
//   - opts: Connector options
//
// Returns:
//   - *Connector: A connector implementing cql.Connector
func NewConnector(opts ...ConnectorOption) *Connector {
	c := &Connector{}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ClusterConfig returns the gocql cluster configuration Connect would use.
func (c *Connector) ClusterConfig(params cql.ClusterParams) *gocql.ClusterConfig {
	cluster := NewClusterConfig(params)
	if cluster.SslOpts != nil {
		cluster.SslOpts.EnableHostVerification = c.hostVerification
		cluster.SslOpts.CaPath = c.caPath
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
// gocql v1 cannot abort session creation, so when ctx ends first Connect
// returns ctx.Err() and closes the late session in the background.
//
// Parameters:
//   - ctx: Context bounding the dial
//   - params: Driver-facing connection parameters
//
// Returns:
//   - cql.Session: The established session
//   - error: ctx.Err(), or a driver error wrapped with cql.ErrAuthentication
//     or cql.ErrNoHostAvailable
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
