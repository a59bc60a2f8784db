package vm

import (
	"fmt"
	"io"
	"net/http"

	"github.com/VictoriaMetrics/metrics"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "cfkv"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector will register metrics with this set instead of
// creating a new one. The caller is responsible for exposing this set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

// WithConnectedFunc exports a {prefix}_session_connected gauge backed by fn,
// typically Client.Connected.
//
// Parameters:
//   - fn: Reports whether the session is established; must not block
//
// Returns:
//   - Option: A configuration option
func WithConnectedFunc(fn func() bool) Option {
	return func(c *Collector) {
		c.connected = fn
	}
}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// All metrics are pre-created at initialization time.
// Thread-safe for concurrent use.
type Collector struct {
	set       *metrics.Set
	prefix    string
	connected func() bool

	// Connection metrics
	connectTotal    *metrics.Counter
	connectErrors   *metrics.Counter
	connectDuration *metrics.Histogram

	// Store metrics
	storeTotal    *metrics.Counter
	storeErrors   *metrics.Counter
	storeDuration *metrics.Histogram

	// Fetch metrics
	fetchTotal    *metrics.Counter
	fetchErrors   *metrics.Counter
	fetchMisses   *metrics.Counter
	fetchDuration *metrics.Histogram

	// Schema metrics
	tablesCreated *metrics.Counter
	tablesDropped *metrics.Counter
	guardRejected *metrics.Counter
}

// Compile-time assertion that Collector implements types.MetricsCollector.
var _ types.MetricsCollector = (*Collector)(nil)

// New creates a new VictoriaMetrics-based metrics collector.
//
// The collector creates its own metrics.Set and registers it globally
// unless WithMetricsSet is given.
//
// Parameters:
//   - opts: Configuration options (e.g., WithPrefix)
//
// Returns:
//   - *Collector: A new metrics collector ready for use
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	client, _ := cfcassandra.NewClient(details,
//	    cfcassandra.WithMetrics(collector),
//	)
func New(opts ...Option) *Collector {
	c := &Collector{
		prefix: "cfkv",
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	c.initMetrics()

	return c
}

func (c *Collector) initMetrics() {
	p := c.prefix

	c.connectTotal = c.set.NewCounter(fmt.Sprintf(`%s_connect_total`, p))
	c.connectErrors = c.set.NewCounter(fmt.Sprintf(`%s_connect_errors_total`, p))
	c.connectDuration = c.set.NewHistogram(fmt.Sprintf(`%s_connect_duration_seconds`, p))

	c.storeTotal = c.set.NewCounter(fmt.Sprintf(`%s_store_total`, p))
	c.storeErrors = c.set.NewCounter(fmt.Sprintf(`%s_store_errors_total`, p))
	c.storeDuration = c.set.NewHistogram(fmt.Sprintf(`%s_store_duration_seconds`, p))

	c.fetchTotal = c.set.NewCounter(fmt.Sprintf(`%s_fetch_total`, p))
	c.fetchErrors = c.set.NewCounter(fmt.Sprintf(`%s_fetch_errors_total`, p))
	c.fetchMisses = c.set.NewCounter(fmt.Sprintf(`%s_fetch_misses_total`, p))
	c.fetchDuration = c.set.NewHistogram(fmt.Sprintf(`%s_fetch_duration_seconds`, p))

	c.tablesCreated = c.set.NewCounter(fmt.Sprintf(`%s_tables_created_total`, p))
	c.tablesDropped = c.set.NewCounter(fmt.Sprintf(`%s_tables_dropped_total`, p))
	c.guardRejected = c.set.NewCounter(fmt.Sprintf(`%s_guard_rejected_total`, p))

	if c.connected != nil {
		c.set.NewGauge(fmt.Sprintf(`%s_session_connected`, p), func() float64 {
			if c.connected() {
				return 1
			}

			return 0
		})
	}
}

// Set returns the underlying metrics set.
func (c *Collector) Set() *metrics.Set {
	return c.set
}

// Handler exposes metrics in Prometheus format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// WritePrometheus writes all metrics in Prometheus format to the given writer.
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

// ----------------------
// Connection
// ----------------------

// IncConnectTotal increments the session establishment attempt counter.
func (c *Collector) IncConnectTotal() {
	c.connectTotal.Inc()
}

// IncConnectError increments the failed session establishment counter.
func (c *Collector) IncConnectError() {
	c.connectErrors.Inc()
}

// ObserveConnectDuration records a session establishment duration in seconds.
func (c *Collector) ObserveConnectDuration(seconds float64) {
	c.connectDuration.Update(seconds)
}

// ----------------------
// Store
// ----------------------

// IncStoreTotal increments the store operation counter.
func (c *Collector) IncStoreTotal() {
	c.storeTotal.Inc()
}

// IncStoreError increments the failed store counter.
func (c *Collector) IncStoreError() {
	c.storeErrors.Inc()
}

// ObserveStoreDuration records a store duration in seconds.
func (c *Collector) ObserveStoreDuration(seconds float64) {
	c.storeDuration.Update(seconds)
}

// ----------------------
// Fetch
// ----------------------

// IncFetchTotal increments the fetch operation counter.
func (c *Collector) IncFetchTotal() {
	c.fetchTotal.Inc()
}

// IncFetchError increments the failed fetch counter.
func (c *Collector) IncFetchError() {
	c.fetchErrors.Inc()
}

// IncFetchMiss increments the counter of fetches for absent keys.
func (c *Collector) IncFetchMiss() {
	c.fetchMisses.Inc()
}

// ObserveFetchDuration records a fetch duration in seconds.
func (c *Collector) ObserveFetchDuration(seconds float64) {
	c.fetchDuration.Update(seconds)
}

// ----------------------
// Schema
// ----------------------

// IncTableCreated increments the created tables counter.
func (c *Collector) IncTableCreated() {
	c.tablesCreated.Inc()
}

// IncTableDropped increments the dropped tables counter.
func (c *Collector) IncTableDropped() {
	c.tablesDropped.Inc()
}

// IncGuardRejected increments the counter of operations on missing tables.
func (c *Collector) IncGuardRejected() {
	c.guardRejected.Inc()
}
