// Package metrics exposes Prometheus counters for the HTTP surface and the
// document pipeline.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var Module = fx.Module("observability.metrics",
	fx.Provide(NewRegistry),
	fx.Provide(New),
)

func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return registry
}

// Metrics holds every collector the service records into.
type Metrics struct {
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	DocsProcessed *prometheus.CounterVec
	JobsInFlight  prometheus.Gauge
	OcrDuration   prometheus.Histogram
}

func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		DocsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "documents_processed_total",
			Help: "Uploaded documents by terminal pipeline status.",
		}, []string{"status"}),
		JobsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "document_jobs_in_flight",
			Help: "Document jobs currently being processed.",
		}),
		OcrDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ocr_duration_seconds",
			Help:    "Latency of OCR reads.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.DocsProcessed,
		m.JobsInFlight,
		m.OcrDuration,
	)
	return m
}

// GinMiddleware records request totals and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.requestTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
