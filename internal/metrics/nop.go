// Package metrics provides internal metrics utilities for cfcassandra.
package metrics

import "github.com/JCL38-ORANGE/cf-cassandra-example-app/types"

// NopMetrics is a no-op metrics collector that discards all metrics.
//
// It is the default collector when none is configured, so components never
// check for nil.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements types.MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNopMetrics creates a new no-op metrics collector.
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

// ----------------------
// Connection
// ----------------------

// IncConnectTotal discards the metric.
func (m *NopMetrics) IncConnectTotal() {}

// IncConnectError discards the metric.
func (m *NopMetrics) IncConnectError() {}

// ObserveConnectDuration discards the metric.
func (m *NopMetrics) ObserveConnectDuration(_ float64) {}

// ----------------------
// Store
// ----------------------

// IncStoreTotal discards the metric.
func (m *NopMetrics) IncStoreTotal() {}

// IncStoreError discards the metric.
func (m *NopMetrics) IncStoreError() {}

// ObserveStoreDuration discards the metric.
func (m *NopMetrics) ObserveStoreDuration(_ float64) {}

// ----------------------
// Fetch
// ----------------------

// IncFetchTotal discards the metric.
func (m *NopMetrics) IncFetchTotal() {}

// IncFetchError discards the metric.
func (m *NopMetrics) IncFetchError() {}

// IncFetchMiss discards the metric.
func (m *NopMetrics) IncFetchMiss() {}

// ObserveFetchDuration discards the metric.
func (m *NopMetrics) ObserveFetchDuration(_ float64) {}

// ----------------------
// Schema
// ----------------------

// IncTableCreated discards the metric.
func (m *NopMetrics) IncTableCreated() {}

// IncTableDropped discards the metric.
func (m *NopMetrics) IncTableDropped() {}

// IncGuardRejected discards the metric.
func (m *NopMetrics) IncGuardRejected() {}
