package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "solar_savings_"

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	analysisRuns    *prometheus.CounterVec
	analysisLatency prometheus.Histogram
)

func initMetrics() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "HTTP requests by method and status",
			},
			[]string{"method", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		)
		analysisRuns = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "analysis_runs_total",
				Help: "Pipeline runs by result",
			},
			[]string{"result"},
		)
		analysisLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "analysis_run_seconds",
				Help:    "Pipeline run latency including file loads",
				Buckets: prometheus.DefBuckets,
			},
		)
		prometheus.MustRegister(httpRequests, httpLatency, analysisRuns, analysisLatency)
	})
}

// Metrics records per-request counters and latency.
func Metrics() gin.HandlerFunc {
	initMetrics()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		httpRequests.WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler exposes the prometheus registry under gin.
func MetricsHandler() gin.HandlerFunc {
	initMetrics()
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordAnalysis is called by the analysis handler after each pipeline run.
func RecordAnalysis(result string, elapsed time.Duration) {
	initMetrics()
	analysisRuns.WithLabelValues(result).Inc()
	analysisLatency.Observe(elapsed.Seconds())
}
