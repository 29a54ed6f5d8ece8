package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpdatesProcessed = prometheus.NewCounter(prometheus.CounterOpts{Name: "updates_processed_total", Help: "Depth updates applied to the book"})
	TradesExecuted   = prometheus.NewCounter(prometheus.CounterOpts{Name: "trades_executed_total", Help: "Orders that passed risk and were executed"})
	RiskRejects      = prometheus.NewCounter(prometheus.CounterOpts{Name: "risk_rejects_total", Help: "Orders rejected by the risk gate"})
	RecordsSkipped   = prometheus.NewCounter(prometheus.CounterOpts{Name: "records_skipped_total", Help: "Malformed update records skipped"})
	TickLatencyUs    = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "tick_latency_us", Help: "Book-mutate-to-decision latency in microseconds", Buckets: prometheus.ExponentialBuckets(1, 2, 16)})
)

// Init builds a registry with the engine collectors plus the standard Go
// and process collectors.
func Init() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		UpdatesProcessed, TradesExecuted, RiskRejects, RecordsSkipped, TickLatencyUs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler exposes the registry over HTTP for the live /metrics endpoint.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
