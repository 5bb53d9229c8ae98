package upstream

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for upstream traffic and scanning.
type Metrics struct {
	Registry         *prometheus.Registry
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  prometheus.Histogram
	PagesScanned     prometheus.Counter
	ItemsSeenTotal   prometheus.Counter
	ErrorsTotal      *prometheus.CounterVec
	ServedPoolLength prometheus.Histogram
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "liveapi_upstream_requests_total",
			Help: "Total HTTP requests issued to the upstream APIs.",
		},
		[]string{"target"},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "liveapi_upstream_request_duration_seconds",
			Help:    "HTTP request latency for upstream calls.",
			Buckets: prometheus.DefBuckets,
		},
	)
	pagesScanned := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "liveapi_pages_scanned_total",
			Help: "Total upstream listing pages fetched during scans.",
		},
	)
	itemsSeen := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "liveapi_items_seen_total",
			Help: "Total upstream records inspected during scans.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "liveapi_upstream_errors_total",
			Help: "Total upstream errors by type.",
		},
		[]string{"error_type"},
	)
	poolLength := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "liveapi_served_pool_length",
			Help:    "Size of the served pool after filtering, per request.",
			Buckets: []float64{0, 5, 10, 20, 40, 80, 160, 320},
		},
	)

	registry.MustRegister(requests, requestDuration, pagesScanned, itemsSeen, errorsTotal, poolLength)

	return &Metrics{
		Registry:         registry,
		RequestsTotal:    requests,
		RequestDuration:  requestDuration,
		PagesScanned:     pagesScanned,
		ItemsSeenTotal:   itemsSeen,
		ErrorsTotal:      errorsTotal,
		ServedPoolLength: poolLength,
	}
}

// IncRequest increments the requests counter for a target label.
func (m *Metrics) IncRequest(target string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(target).Inc()
}

// ObserveDuration records an upstream request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// IncPages increments the pages scanned counter.
func (m *Metrics) IncPages() {
	if m == nil {
		return
	}
	m.PagesScanned.Inc()
}

// AddItems adds to the items seen counter.
func (m *Metrics) AddItems(n int) {
	if m == nil {
		return
	}
	m.ItemsSeenTotal.Add(float64(n))
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

// ObservePoolLength records the served pool size for one request.
func (m *Metrics) ObservePoolLength(n int) {
	if m == nil {
		return
	}
	m.ServedPoolLength.Observe(float64(n))
}
