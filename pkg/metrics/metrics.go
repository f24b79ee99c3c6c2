// Package metrics provides the Prometheus registry reference for the
// SEDIA client. Metrics are defined in their owning packages (client,
// paginate) to keep the dependency graph acyclic; this package documents
// them in one place.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the SEDIA client.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - sedia_requests_total{status} (Counter): Requests by HTTP status
//     (or "network_error")
//   - sedia_request_duration_seconds (Histogram): Request duration
//   - sedia_errors_total{class} (Counter): Fetch errors by class
//     (client, server, rate_limit, network)
//
// Pagination Metrics (pkg/paginate):
//   - sedia_pages_fetched_total (Counter): Pages aggregated into results
//   - sedia_pages_dropped_total (Counter): Pages dropped after failures
//   - sedia_fetch_runs_total{result} (Counter): Runs by outcome
//     (complete, partial, empty)
//
// Example Prometheus Queries:
//
//   # Page drop rate
//   rate(sedia_pages_dropped_total[5m]) /
//   (rate(sedia_pages_fetched_total[5m]) + rate(sedia_pages_dropped_total[5m]))
//
//   # Request error rate
//   rate(sedia_errors_total[5m])
//
//   # P95 request latency
//   histogram_quantile(0.95, rate(sedia_request_duration_seconds_bucket[5m]))
