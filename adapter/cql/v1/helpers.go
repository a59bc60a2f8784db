package v1

import (
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql"
	"github.com/gocql/gocql"
)

// ToGocqlConsistency converts a cfcassandra Consistency to gocql.Consistency.
//
// Parameters:
//   - c: cfcassandra consistency level
//
// Returns:
//   - gocql.Consistency: The equivalent gocql consistency level
//
// Example:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	cluster.Consistency = v1.ToGocqlConsistency(cql.Quorum)
func ToGocqlConsistency(c cql.Consistency) gocql.Consistency {
	return gocql.Consistency(c)
}

// NewClusterConfig builds a gocql cluster configuration from ClusterParams.
//
// Every contact point is handed to the driver, which fails over between them
// while building the control connection. The keyspace is deliberately not set
// on the cluster: statements are fully qualified, and a missing keyspace must
// surface through the schema guard rather than as a connection failure.
//
// Parameters:
//   - params: Driver-facing connection parameters
//
// Returns:
//   - *gocql.ClusterConfig: Configuration ready for CreateSession
func NewClusterConfig(params cql.ClusterParams) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(params.Hosts...)
	if params.Port > 0 {
		cluster.Port = params.Port
	}
	if params.ConnectTimeout > 0 {
		cluster.ConnectTimeout = params.ConnectTimeout
	}
	if params.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: params.Username,
			Password: params.Password,
		}
	}
	if params.SSL {
		cluster.SslOpts = &gocql.SslOptions{}
	}

	return cluster
}
