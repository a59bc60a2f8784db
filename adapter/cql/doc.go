// Package cql provides adapter interfaces and implementations for CQL (Cassandra Query Language)
// database drivers.
//
// This package defines the narrow interfaces that CQL driver adapters must implement,
// allowing cfcassandra to work with different versions of gocql without forwarding
// the whole driver API.
//
// # Interfaces
//
//   - Connector: Turns ClusterParams into a live Session
//   - Session: Issues parameterized statements and answers keyspace metadata lookups
//   - Query: A CQL statement with bind parameters
//   - Iter: Iterates over query results
//
// # Adapters
//
// Driver-specific adapters are provided in subpackages:
//
//   - [github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql/v1]: Adapter for gocql v1.x
//   - [github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql/v2]: Adapter for apache/cassandra-gocql-driver v2.x
//
// # Usage
//
//	import (
//	    cfcassandra "github.com/JCL38-ORANGE/cf-cassandra-example-app"
//	    v2 "github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql/v2"
//	)
//
//	client, err := cfcassandra.NewClient(details,
//	    cfcassandra.WithConnector(v2.NewConnector()),
//	)
package cql
