// Package integration_test runs cfcassandra against a real Cassandra or
// ScyllaDB container.
//
// # Running Integration Tests
//
// Integration tests are skipped by default when using -short flag:
//
//	go test -short ./...           # Skips integration tests
//	go test ./test/integration/... # Runs integration tests
//
// They require Docker. Set SKIP_INTEGRATION_TESTS=1 to skip container setup.
package integration_test
