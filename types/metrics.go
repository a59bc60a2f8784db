package types

// MetricsCollector defines methods for collecting operational metrics.
//
// Implementations should be thread-safe as methods may be called concurrently.
//
// Example usage with VictoriaMetrics (via contrib/metrics/vm):
//
//	import vmmetrics "github.com/JCL38-ORANGE/cf-cassandra-example-app/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	client, _ := cfcassandra.NewClient(details,
//	    cfcassandra.WithMetrics(collector),
//	)
//
//	// Expose metrics via HTTP
//	http.HandleFunc("/metrics", collector.Handler)
type MetricsCollector interface {
	// ----------------------
	// Connection
	// ----------------------

	// IncConnectTotal increments the session establishment attempt counter.
	IncConnectTotal()

	// IncConnectError increments the failed session establishment counter.
	IncConnectError()

	// ObserveConnectDuration records how long session establishment took, in seconds.
	ObserveConnectDuration(seconds float64)

	// ----------------------
	// Store
	// ----------------------

	// IncStoreTotal increments the store operation counter.
	IncStoreTotal()

	// IncStoreError increments the failed store counter.
	IncStoreError()

	// ObserveStoreDuration records a store duration in seconds.
	ObserveStoreDuration(seconds float64)

	// ----------------------
	// Fetch
	// ----------------------

	// IncFetchTotal increments the fetch operation counter.
	IncFetchTotal()

	// IncFetchError increments the failed fetch counter (misses excluded).
	IncFetchError()

	// IncFetchMiss increments the counter of fetches that found no row.
	IncFetchMiss()

	// ObserveFetchDuration records a fetch duration in seconds.
	ObserveFetchDuration(seconds float64)

	// ----------------------
	// Schema
	// ----------------------

	// IncTableCreated increments the counter of tables actually created.
	IncTableCreated()

	// IncTableDropped increments the counter of tables actually dropped.
	IncTableDropped()

	// IncGuardRejected increments the counter of operations rejected because
	// the target table did not exist.
	IncGuardRejected()
}
