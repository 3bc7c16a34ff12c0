// Package metrics exposes Prometheus collectors for the recognition service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ironsheep/image-recognize/internal/cache"
	"github.com/ironsheep/image-recognize/internal/model"
)

const namespace = "image_recognize"

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	recognitions *prometheus.CounterVec
	stages       *prometheus.HistogramVec
}

// New registers the request, recognition and stage collectors along with
// the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_response_time_seconds",
			Help:      "HTTP response time in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		}, []string{"method", "path"}),
		recognitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recognitions_total",
			Help:      "Recognition outcomes by image type, result kind and cache status.",
		}, []string{"image_type", "kind", "cache"}),
		stages: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of QR decoding and text recognition calls.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 3, 5, 7.5, 10, 15},
		}, []string{"stage"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.recognitions,
		m.stages,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveStage records one engine call.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.stages.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveRecognition counts a finished recognition.
func (m *Metrics) ObserveRecognition(r *model.RecognitionResult, cacheHit bool) {
	status := "miss"
	if cacheHit {
		status = "hit"
	}
	m.recognitions.WithLabelValues(string(r.ImageType), string(r.Kind), status).Inc()
}

// WatchCache exports the counters of a cache through stats.
func (m *Metrics) WatchCache(stats func() cache.Stats) {
	counter := func(name, help string, read func(cache.Stats) uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(read(stats())) })
	}

	m.registry.MustRegister(
		counter("memory_hits_total", "Lookups answered by the memory tier.", func(s cache.Stats) uint64 { return s.MemoryHits }),
		counter("disk_hits_total", "Lookups answered by the disk tier.", func(s cache.Stats) uint64 { return s.DiskHits }),
		counter("misses_total", "Lookups answered by neither tier.", func(s cache.Stats) uint64 { return s.Misses }),
		counter("stores_total", "Results written to the cache.", func(s cache.Stats) uint64 { return s.Stores }),
		counter("swept_total", "Disk entries removed by sweeps.", func(s cache.Stats) uint64 { return s.Swept }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "memory_entries",
			Help:      "Entries currently held in memory.",
		}, func() float64 { return float64(stats().Entries) }),
	)
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		method := c.Method()
		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
