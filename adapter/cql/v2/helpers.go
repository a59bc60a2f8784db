package v2

import (
	gocql "github.com/apache/cassandra-gocql-driver/v2"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql"
)

// ToGocqlConsistency converts a cfcassandra Consistency to gocql.Consistency.
func ToGocqlConsistency(c cql.Consistency) gocql.Consistency {
	return gocql.Consistency(c)
}

// NewClusterConfig builds an Apache driver cluster configuration from
// ClusterParams. The keyspace is left unset; statements are fully qualified.
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
