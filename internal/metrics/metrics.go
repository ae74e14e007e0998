// Package metrics holds the Prometheus collectors of the portal.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Imports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal", Name: "imports_total", Help: "Roster imports by kind and outcome",
	}, []string{"kind", "outcome"})

	ImportRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal", Name: "import_rows_total", Help: "Roster rows by kind and result",
	}, []string{"kind", "result"})

	ImportDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portal", Name: "import_duration_seconds", Help: "Roster import latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal", Name: "http_requests_total", Help: "HTTP responses by status class",
	}, []string{"method", "status"})

	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "portal", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(Imports, ImportRows, ImportDuration, HTTPRequests, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

// ObserveImport records one finished import. outcome is "ok", "rejected" or "error".
func ObserveImport(kind, outcome string, d time.Duration) {
	Imports.WithLabelValues(kind, outcome).Inc()
	ImportDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// AddImportRows adds n rows with the given result ("inserted", "duplicate", ...).
func AddImportRows(kind, result string, n int) {
	if n <= 0 {
		return
	}
	ImportRows.WithLabelValues(kind, result).Add(float64(n))
}
