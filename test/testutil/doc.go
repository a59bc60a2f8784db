// Package testutil provides test doubles and container helpers for
// cfcassandra tests.
//
// # Test Doubles
//
//   - [MockCQLSession]: In-memory cql.Session understanding the statements
//     the key-value layer issues, with error injection
//   - [MockConnector]: cql.Connector handing out a fixed session or error
//   - [SlowCQLSession]: Wrapper adding latency to every query
//   - [TestMetricsCollector]: Counting types.MetricsCollector
//   - [RecordingLogger]: types.Logger keeping every message
//
// # Usage
//
//	session := testutil.NewMockCQLSession("app")
//	session.AddTable("app", "users")
//
//	client, _ := cfcassandra.NewClient(details,
//	    cfcassandra.WithConnector(testutil.NewMockConnector(session)),
//	)
//
// # Integration Test Helpers
//
// [StartCQLCluster] starts a ScyllaDB container, or Cassandra when Linux AIO
// is exhausted, and creates the test keyspace. It requires Docker.
package testutil
