// Package v2 provides an adapter for gocql v2 (github.com/apache/cassandra-gocql-driver).
//
// It mirrors the v1 adapter for applications that have moved to the Apache
// driver. Select it with the WithConnector client option:
//
//	import (
//	    cfcassandra "github.com/JCL38-ORANGE/cf-cassandra-example-app"
//	    v2 "github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql/v2"
//	)
//
//	client, err := cfcassandra.NewClient(details,
//	    cfcassandra.WithConnector(v2.NewConnector()),
//	)
//
// # Differences from v1
//
//   - Query.Release is a no-op (v2 has no query pooling)
//   - Context-aware methods call the driver's native *Context variants
package v2
