// Package metrics provides Prometheus collectors for the catalog pipeline.
package metrics

import (
	"net/http"
	"time"

	catalogapp "github.com/catalog/backend/internal/application/catalog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CatalogMetrics implements the application Metrics port with Prometheus
// collectors registered on a private registry.
type CatalogMetrics struct {
	registry *prometheus.Registry

	jobsSubmitted prometheus.Counter
	jobsFailed    prometheus.Counter
	pagesSkipped  prometheus.Counter

	jobDuration      prometheus.Histogram
	workflowDuration *prometheus.HistogramVec
}

// NewCatalogMetrics creates collectors on a fresh registry
func NewCatalogMetrics() *CatalogMetrics {
	registry := prometheus.NewRegistry()

	m := &CatalogMetrics{
		registry: registry,
		jobsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_jobs_submitted_total",
			Help: "Total number of catalog generation jobs submitted",
		}),
		jobsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_jobs_failed_total",
			Help: "Total number of catalog generation jobs that failed",
		}),
		pagesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_pages_skipped_total",
			Help: "Total number of product pages skipped after render failures",
		}),
		jobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_job_duration_seconds",
			Help:    "Wall-clock duration of completed catalog generation jobs",
			Buckets: []float64{5, 15, 30, 60, 120, 300, 600},
		}),
		workflowDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_workflow_call_duration_seconds",
			Help:    "Duration of external workflow calls by workflow and outcome",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"workflow", "status"}),
	}

	registry.MustRegister(
		m.jobsSubmitted,
		m.jobsFailed,
		m.pagesSkipped,
		m.jobDuration,
		m.workflowDuration,
	)

	return m
}

// JobSubmitted counts an accepted submission
func (m *CatalogMetrics) JobSubmitted() {
	m.jobsSubmitted.Inc()
}

// JobCompleted records the duration of a successful generation run
func (m *CatalogMetrics) JobCompleted(duration time.Duration) {
	m.jobDuration.Observe(duration.Seconds())
}

// JobFailed counts a failed generation run
func (m *CatalogMetrics) JobFailed() {
	m.jobsFailed.Inc()
}

// PageSkipped counts a product page dropped from the final document
func (m *CatalogMetrics) PageSkipped() {
	m.pagesSkipped.Inc()
}

// ObserveWorkflowCall records one external workflow call
func (m *CatalogMetrics) ObserveWorkflowCall(workflow string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.workflowDuration.WithLabelValues(workflow, status).Observe(duration.Seconds())
}

// Handler returns an HTTP handler exposing the registry in Prometheus format
func (m *CatalogMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry (for testing/monitoring)
func (m *CatalogMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Ensure CatalogMetrics implements the application Metrics port
var _ catalogapp.Metrics = (*CatalogMetrics)(nil)
