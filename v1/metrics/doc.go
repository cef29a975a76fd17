// Package metrics exposes Prometheus metrics for search operations and any
// application-defined collectors.
//
// A *Metrics owns an isolated registry and an HTTP server serving /metrics.
// Every collector registered through it gets a constant "service" label and,
// when Config.Namespace is set, a name prefix.
//
// Core Features:
//   - Built-in operation metrics fed by SearchObserver
//   - CreateCounter, CreateHistogram and CreateGauge for custom collectors
//   - Optional Go runtime, process and build info collectors
//   - An fx module that starts and stops the metrics server
//
// The built-in metrics are:
//
//	search_operations_total{operation,status}        counter, status is "success" or "error"
//	search_operation_duration_seconds{operation}     histogram, default buckets
//
// The Searcher reports each Execute call under the "execute" operation.
//
// # Basic Usage
//
//	import "github.com/intellegens-hr/commons/v1/metrics"
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:     ":9090",
//		ServiceName: "catalog-search",
//		Namespace:   "catalog",
//	})
//	go m.Server.ListenAndServe()
//
//	// Feed the operation metrics from the search executor.
//	searcher := search.NewSearcher(compiler, cfg, log).
//		WithObserver(metrics.NewSearchObserver(m))
//
//	// Application collectors share the service label and namespace.
//	hits := m.CreateCounter("cache_hits_total", "Path cache hits", []string{"schema"})
//	hits.WithLabelValues("Article").Inc()
//
// CreateCounter, CreateHistogram and CreateGauge panic when a collector with
// the same name is already registered, in the same way as MustRegister.
//
// # FX Module Integration
//
// FXModule provides *Metrics, the MetricsCollector interface and an
// observability.Observer. search.FXModule attaches that observer to the
// Searcher it builds, so including both modules is enough to get operation
// metrics:
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		search.FXModule,
//		fx.Provide(
//			func() metrics.Config { return metrics.Config{ServiceName: "catalog-search"} },
//			// logger.Config, search.Config and *search.Registry providers...
//		),
//	)
//
// The server starts in OnStart on a background goroutine and is shut down
// gracefully in OnStop.
//
// # Configuration
//
//	METRICS_ADDRESS=:9090
//	METRICS_NAMESPACE=catalog
//	METRICS_SERVICE_NAME=catalog-search
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true
//
// Address defaults to DefaultMetricsAddress.
//
// # Thread Safety
//
// *Metrics and SearchObserver are safe for concurrent use. The underlying
// Prometheus vectors handle their own synchronisation.
package metrics
