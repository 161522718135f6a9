package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	snapshotSaves   prometheus.Counter
	snapshotErrors  prometheus.Counter
}

// NewMetricsService registers the collectors. eventCount feeds a gauge
// tracking the size of the event repository.
func NewMetricsService(eventCount func() float64) *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	queryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "calendar_query_duration_seconds",
		Help:    "Duration of occurrence queries including recurrence expansion",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	snapshotSaves := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calendar_snapshot_saves_total",
		Help: "Total snapshot writes attempted",
	})

	snapshotErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calendar_snapshot_errors_total",
		Help: "Total snapshot writes that failed after retries",
	})

	storedEvents := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "calendar_events",
		Help: "Number of base events in the repository",
	}, eventCount)

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, queryDuration, snapshotSaves, snapshotErrors, storedEvents, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		queryDuration:   queryDuration,
		snapshotSaves:   snapshotSaves,
		snapshotErrors:  snapshotErrors,
	}
}

// Handler exposes the scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one completed request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	s.requestDuration.With(labels).Observe(duration.Seconds())
	s.requestTotal.With(labels).Inc()
}

// ObserveQuery records one occurrence lookup.
func (s *MetricsService) ObserveQuery(name string, duration time.Duration) {
	s.queryDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// ObserveSnapshotSave records a snapshot write attempt and its outcome.
func (s *MetricsService) ObserveSnapshotSave(failed bool) {
	s.snapshotSaves.Inc()
	if failed {
		s.snapshotErrors.Inc()
	}
}
