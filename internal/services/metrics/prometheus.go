package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "amlwatch"

// PrometheusCollector implements MetricsCollector on its own registry.
type PrometheusCollector struct {
	registry *prometheus.Registry

	transactions *prometheus.CounterVec
	duration     prometheus.Histogram
	riskLevels   *prometheus.CounterVec
	casesCreated prometheus.Counter
	stepErrors   *prometheus.CounterVec
	dispatches   *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	dbOpenConns  prometheus.Gauge
	dbInUseConns prometheus.Gauge
}

func NewPrometheusCollector() *PrometheusCollector {
	c := &PrometheusCollector{registry: prometheus.NewRegistry()}
	c.transactions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_processed_total",
		Help:      "Transactions handled by the pipeline, by outcome status.",
	}, []string{"status"})
	c.duration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "transaction_processing_seconds",
		Help:      "Synchronous pipeline duration per transaction.",
		Buckets:   prometheus.DefBuckets,
	})
	c.riskLevels = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "risk_level_total",
		Help:      "Scored transactions by risk level.",
	}, []string{"level"})
	c.casesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suspicious_cases_created_total",
		Help:      "Suspicious cases opened.",
	})
	c.stepErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pipeline_step_errors_total",
		Help:      "Degraded pipeline steps by step name.",
	}, []string{"step"})
	c.dispatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "background_jobs_total",
		Help:      "Background jobs by kind and result.",
	}, []string{"job", "result"})
	c.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status class.",
	}, []string{"method", "path", "status"})
	c.dbOpenConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "db_open_connections",
		Help:      "Open database connections.",
	})
	c.dbInUseConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "db_in_use_connections",
		Help:      "Database connections currently in use.",
	})

	c.registry.MustRegister(
		c.transactions,
		c.duration,
		c.riskLevels,
		c.casesCreated,
		c.stepErrors,
		c.dispatches,
		c.httpRequests,
		c.dbOpenConns,
		c.dbInUseConns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *PrometheusCollector) RecordProcessed(status string, d time.Duration) {
	c.transactions.WithLabelValues(status).Inc()
	c.duration.Observe(d.Seconds())
}

func (c *PrometheusCollector) RecordRiskLevel(level string) {
	c.riskLevels.WithLabelValues(level).Inc()
}

func (c *PrometheusCollector) RecordCaseCreated() {
	c.casesCreated.Inc()
}

func (c *PrometheusCollector) RecordStepError(step string) {
	c.stepErrors.WithLabelValues(step).Inc()
}

func (c *PrometheusCollector) RecordDispatch(job, result string) {
	c.dispatches.WithLabelValues(job, result).Inc()
}

// RecordDBStats samples the connection pool gauges.
func (c *PrometheusCollector) RecordDBStats(s sql.DBStats) {
	c.dbOpenConns.Set(float64(s.OpenConnections))
	c.dbInUseConns.Set(float64(s.InUse))
}

// Registry exposes the underlying registry.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}

// Middleware counts HTTP requests by matched route.
func (c *PrometheusCollector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		status := ctx.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		c.httpRequests.WithLabelValues(ctx.Method(), ctx.Route().Path, statusBucket(status)).Inc()
		return err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *PrometheusCollector) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}

func statusBucket(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}
