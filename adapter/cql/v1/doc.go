// Package v1 provides an adapter for gocql v1.x to work with cfcassandra.
//
// The adapter opens sessions from cql.ClusterParams and wraps gocql sessions,
// queries and iterators to implement the cfcassandra CQL interfaces.
//
// # Usage
//
// The v1 connector is the default, so most callers never import this package
// directly. Options are available for TLS and low-level driver tuning:
//
//	connector := v1.NewConnector(
//	    v1.WithCAPath("/etc/ssl/cassandra-ca.pem"),
//	    v1.WithHostVerification(true),
//	)
//
//	client, err := cfcassandra.NewClient(details,
//	    cfcassandra.WithConnector(connector),
//	)
//
// # Type Conversions
//
//   - [ToGocqlConsistency]: Converts cfcassandra Consistency to gocql.Consistency
//   - [NewClusterConfig]: Builds a gocql.ClusterConfig from cql.ClusterParams
//
// # Thread Safety
//
// All adapter types are safe for concurrent use, matching gocql's thread safety guarantees.
package v1
