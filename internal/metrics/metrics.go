// Package metrics provides Prometheus metrics for the term service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics of the service, registered on a
// private registry.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Translation memory metrics
	DocumentsParsedTotal *prometheus.CounterVec
	TermsExtracted       prometheus.Histogram
	ReportsTotal         *prometheus.CounterVec

	// Extraction job metrics
	JobsTotal         *prometheus.CounterVec
	JobsRunning       prometheus.Gauge
	ExtractorDuration prometheus.Histogram
}

// New creates and registers all metrics, plus the Go runtime and process
// collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "termsuite_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "termsuite_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPRequestsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "termsuite_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		}),

		DocumentsParsedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "termsuite_tmx_documents_parsed_total",
			Help: "Translation memories parsed, by winning traversal strategy",
		}, []string{"strategy"}),
		TermsExtracted: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "termsuite_tmx_terms_extracted",
			Help:    "Distinct terms per extracted artifact",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}),
		ReportsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "termsuite_reports_total",
			Help: "Generated reports by format and outcome",
		}, []string{"format", "outcome"}),

		JobsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "termsuite_extraction_jobs_total",
			Help: "Finished extraction jobs by final status",
		}, []string{"status"}),
		JobsRunning: f.NewGauge(prometheus.GaugeOpts{
			Name: "termsuite_extraction_jobs_running",
			Help: "Extraction jobs currently holding a worker slot",
		}),
		ExtractorDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "termsuite_extractor_duration_seconds",
			Help:    "Wall time of the delegated extractor process",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
	}
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RequestStarted and RequestDone track requests being served.
func (m *Metrics) RequestStarted() { m.HTTPRequestsInFlight.Inc() }
func (m *Metrics) RequestDone()    { m.HTTPRequestsInFlight.Dec() }

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveParse records a parsed document and the size of its term set.
func (m *Metrics) ObserveParse(strategy string, terms int) {
	if strategy == "" {
		strategy = "none"
	}
	m.DocumentsParsedTotal.WithLabelValues(strategy).Inc()
	m.TermsExtracted.Observe(float64(terms))
}

// ObserveReport records a report generation attempt.
func (m *Metrics) ObserveReport(format string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ReportsTotal.WithLabelValues(format, outcome).Inc()
}

// JobStarted marks a job as holding a worker slot.
func (m *Metrics) JobStarted() { m.JobsRunning.Inc() }

// JobFinished releases the slot and counts the job under its final status.
func (m *Metrics) JobFinished(status string) {
	m.JobsRunning.Dec()
	m.JobsTotal.WithLabelValues(status).Inc()
}

// ObserveExtractor records one delegated extractor run.
func (m *Metrics) ObserveExtractor(elapsed time.Duration) {
	m.ExtractorDuration.Observe(elapsed.Seconds())
}
