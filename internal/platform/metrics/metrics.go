package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for a fetch run.
type Metrics struct {
	registry             *prometheus.Registry
	requestsTotal        prometheus.Counter
	segmentsFetchedTotal prometheus.Counter
	segmentBytesTotal    prometheus.Counter
	manifestsParsedTotal prometheus.Counter
	segmentsTotal        prometheus.Gauge
	errorsTotal          prometheus.Counter
}

// New creates and registers Prometheus metrics for the fetcher.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hls_status_requests_total",
		Help: "Total number of HTTP requests received by the status server",
	})
	segmentsFetchedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hls_segments_fetched_total",
		Help: "Total number of segments successfully fetched",
	})
	segmentBytesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hls_segment_bytes_total",
		Help: "Total number of segment bytes written to the working directory",
	})
	manifestsParsedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hls_manifests_parsed_total",
		Help: "Total number of manifests parsed",
	})
	segmentsTotal := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hls_segments_total",
		Help: "Number of segments in the current task list",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hls_status_errors_total",
		Help: "Total number of status server responses with error status (4xx or 5xx)",
	})

	registry.MustRegister(
		requestsTotal,
		segmentsFetchedTotal,
		segmentBytesTotal,
		manifestsParsedTotal,
		segmentsTotal,
		errorsTotal,
	)

	return &Metrics{
		registry:               registry,
		requestsTotal:          requestsTotal,
		segmentsFetchedTotal:   segmentsFetchedTotal,
		segmentBytesTotal:      segmentBytesTotal,
		manifestsParsedTotal:   manifestsParsedTotal,
		segmentsTotal:          segmentsTotal,
		errorsTotal:            errorsTotal,
	}
}

// IncRequests increments the status server request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncSegmentsFetched increments the fetched segment counter.
func (m *Metrics) IncSegmentsFetched() {
	m.segmentsFetchedTotal.Inc()
}

// AddSegmentBytes adds n to the fetched byte counter.
func (m *Metrics) AddSegmentBytes(n int64) {
	m.segmentBytesTotal.Add(float64(n))
}

// IncManifestsParsed increments the parsed manifest counter.
func (m *Metrics) IncManifestsParsed() {
	m.manifestsParsedTotal.Inc()
}

// SetSegmentsTotal records the size of the task list.
func (m *Metrics) SetSegmentsTotal(n int) {
	m.segmentsTotal.Set(float64(n))
}

// IncErrors increments the status server error counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
