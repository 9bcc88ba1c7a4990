package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the engine collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	httpDuration          *prometheus.HistogramVec
	rateRequests          *prometheus.CounterVec
	quotesReturned        prometheus.Histogram
	probes                *prometheus.CounterVec
	probeLatency          *prometheus.HistogramVec
	tariffRefreshes       *prometheus.CounterVec
	tariffRefreshDuration prometheus.Histogram
	tariffSnapshotRows    *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
			[]string{"method", "path", "status"},
		),
		rateRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "rate_requests_total", Help: "Rate calculation requests by outcome."},
			[]string{"outcome"},
		),
		quotesReturned: prometheus.NewHistogram(
			prometheus.HistogramOpts{Name: "rate_quotes_returned", Help: "Quotes returned per rate request.", Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10}},
		),
		probes: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "serviceability_probes_total", Help: "Serviceability probes by courier and outcome."},
			[]string{"courier", "outcome"},
		),
		probeLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "serviceability_probe_latency_ms", Help: "Serviceability probe latency in ms.", Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000}},
			[]string{"courier"},
		),
		tariffRefreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "tariff_refreshes_total", Help: "Tariff snapshot refreshes by status."},
			[]string{"status"},
		),
		tariffRefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{Name: "tariff_refresh_duration_seconds", Help: "Tariff snapshot refresh duration in seconds.", Buckets: prometheus.DefBuckets},
		),
		tariffSnapshotRows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "tariff_snapshot_rows", Help: "Rows in the active tariff snapshot by scope."},
			[]string{"scope"},
		),
	}

	m.registry.MustRegister(
		m.httpDuration,
		m.rateRequests,
		m.quotesReturned,
		m.probes,
		m.probeLatency,
		m.tariffRefreshes,
		m.tariffRefreshDuration,
		m.tariffSnapshotRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

func (m *Metrics) RecordRateRequest(outcome string, quotes int) {
	m.rateRequests.WithLabelValues(outcome).Inc()
	m.quotesReturned.Observe(float64(quotes))
}

func (m *Metrics) RecordProbe(courier, outcome string, latency time.Duration) {
	m.probes.WithLabelValues(courier, outcome).Inc()
	m.probeLatency.WithLabelValues(courier).Observe(float64(latency.Milliseconds()))
}

func (m *Metrics) RecordTariffRefresh(status string, duration time.Duration, globalRows, overrideRows int) {
	m.tariffRefreshes.WithLabelValues(status).Inc()
	m.tariffRefreshDuration.Observe(duration.Seconds())
	m.tariffSnapshotRows.WithLabelValues("global").Set(float64(globalRows))
	m.tariffSnapshotRows.WithLabelValues("seller").Set(float64(overrideRows))
}
