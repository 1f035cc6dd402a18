// Package metrics exposes Prometheus metrics for the HTTP server and the catalog.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        *prometheus.GaugeVec
	catalogImported     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		httpInflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests in flight by method and route.",
		}, []string{"method", "path"}),
		catalogImported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_imported_total",
			Help: "Catalog entities merged by the importer.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpInflight,
		m.catalogImported,
	)
	return m
}

// RegisterDB adds connection pool statistics for db.
func (m *Metrics) RegisterDB(name string, db *sql.DB) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// RecordImport counts entities merged by one catalog import.
func (m *Metrics) RecordImport(games, genres, publishers int) {
	m.catalogImported.WithLabelValues("games").Add(float64(games))
	m.catalogImported.WithLabelValues("genres").Add(float64(genres))
	m.catalogImported.WithLabelValues("publishers").Add(float64(publishers))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// GinMiddleware records request count, latency and in-flight requests per route
// template, so /game/1 and /game/2 share a series.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		inflight := m.httpInflight.WithLabelValues(method, path)
		inflight.Inc()
		start := time.Now()

		c.Next()

		inflight.Dec()
		m.httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
