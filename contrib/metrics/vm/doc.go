// Package vm provides a VictoriaMetrics-based implementation of the MetricsCollector interface.
//
// This package uses github.com/VictoriaMetrics/metrics for lightweight,
// Prometheus-compatible metrics collection.
//
// # Basic Usage
//
// Create a collector with default prefix "cfkv":
//
//	collector := vm.New()
//	client, _ := cfcassandra.NewClient(details,
//	    cfcassandra.WithMetrics(collector),
//	)
//
// # Exposing Metrics
//
//	http.HandleFunc("/metrics", collector.Handler)
//
// # Metrics Provided
//
// Connection:
//   - {prefix}_connect_total - Counter of session establishment attempts
//   - {prefix}_connect_errors_total - Counter of failed attempts
//   - {prefix}_connect_duration_seconds - Histogram of attempt durations
//   - {prefix}_session_connected - Gauge, 1 once connected (WithConnectedFunc only)
//
// Store and fetch:
//   - {prefix}_store_total, {prefix}_store_errors_total
//   - {prefix}_store_duration_seconds
//   - {prefix}_fetch_total, {prefix}_fetch_errors_total, {prefix}_fetch_misses_total
//   - {prefix}_fetch_duration_seconds
//
// Schema:
//   - {prefix}_tables_created_total - Tables actually created
//   - {prefix}_tables_dropped_total - Tables actually dropped
//   - {prefix}_guard_rejected_total - Operations on tables that did not exist
package vm
