package testutil

import (
	"sync"
	"sync/atomic"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

// TestMetricsCollector is a types.MetricsCollector that counts calls for
// assertions.
type TestMetricsCollector struct {
	ConnectTotal atomic.Int64
	ConnectError atomic.Int64

	StoreTotal atomic.Int64
	StoreError atomic.Int64

	FetchTotal atomic.Int64
	FetchError atomic.Int64
	FetchMiss  atomic.Int64

	TableCreated  atomic.Int64
	TableDropped  atomic.Int64
	GuardRejected atomic.Int64

	mu        sync.Mutex
	durations map[string][]float64
}

// Compile-time assertion that TestMetricsCollector implements types.MetricsCollector.
var _ types.MetricsCollector = (*TestMetricsCollector)(nil)

// NewTestMetricsCollector creates a new test metrics collector.
func NewTestMetricsCollector() *TestMetricsCollector {
	return &TestMetricsCollector{durations: make(map[string][]float64)}
}

// Durations returns the observed durations for "connect", "store" or "fetch".
func (m *TestMetricsCollector) Durations(op string) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]float64(nil), m.durations[op]...)
}

func (m *TestMetricsCollector) observe(op string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[op] = append(m.durations[op], seconds)
}

// IncConnectTotal counts the call.
func (m *TestMetricsCollector) IncConnectTotal() { m.ConnectTotal.Add(1) }

// IncConnectError counts the call.
func (m *TestMetricsCollector) IncConnectError() { m.ConnectError.Add(1) }

// ObserveConnectDuration records the duration.
func (m *TestMetricsCollector) ObserveConnectDuration(seconds float64) {
	m.observe("connect", seconds)
}

// IncStoreTotal counts the call.
func (m *TestMetricsCollector) IncStoreTotal() { m.StoreTotal.Add(1) }

// IncStoreError counts the call.
func (m *TestMetricsCollector) IncStoreError() { m.StoreError.Add(1) }

// ObserveStoreDuration records the duration.
func (m *TestMetricsCollector) ObserveStoreDuration(seconds float64) {
	m.observe("store", seconds)
}

// IncFetchTotal counts the call.
func (m *TestMetricsCollector) IncFetchTotal() { m.FetchTotal.Add(1) }

// IncFetchError counts the call.
func (m *TestMetricsCollector) IncFetchError() { m.FetchError.Add(1) }

// IncFetchMiss counts the call.
func (m *TestMetricsCollector) IncFetchMiss() { m.FetchMiss.Add(1) }

// ObserveFetchDuration records the duration.
func (m *TestMetricsCollector) ObserveFetchDuration(seconds float64) {
	m.observe("fetch", seconds)
}

// IncTableCreated counts the call.
func (m *TestMetricsCollector) IncTableCreated() { m.TableCreated.Add(1) }

// IncTableDropped counts the call.
func (m *TestMetricsCollector) IncTableDropped() { m.TableDropped.Add(1) }

// IncGuardRejected counts the call.
func (m *TestMetricsCollector) IncGuardRejected() { m.GuardRejected.Add(1) }
