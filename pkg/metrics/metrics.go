// Package metrics exposes crawl and http metrics in prometheus format on a private registry
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/truckscope/pkg/domain"
	"github.com/umputun/truckscope/pkg/reconcile"
)

const namespace = "truckscope"

// Collector keeps all metrics, zero value is not usable, make it with New
type Collector struct {
	registry *prometheus.Registry

	fetchedPosts   *prometheus.CounterVec
	fetchErrors    *prometheus.CounterVec
	outcomes       *prometheus.CounterVec
	crawls         *prometheus.CounterVec
	crawlDuration  prometheus.Histogram
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	trackedVendors prometheus.Gauge
}

// New makes collector with its own registry, go and process collectors included
func New(version string) *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.fetchedPosts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "fetched_posts_total", Help: "Posts fetched per platform",
	}, []string{"platform"})
	c.fetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "fetch_errors_total", Help: "Fetch errors per platform",
	}, []string{"platform"})
	c.outcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "reconcile_outcomes_total", Help: "Reconciliation outcomes of parsed posts",
	}, []string{"outcome"})
	c.crawls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "vendor_crawls_total", Help: "Vendor crawls by status",
	}, []string{"status"})
	c.crawlDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "vendor_crawl_duration_seconds", Help: "Duration of a vendor crawl",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2m
	})
	c.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "http_requests_total", Help: "Total number of HTTP requests",
	}, []string{"method", "status"})
	c.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	c.trackedVendors = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "tracked_vendors", Help: "Vendors included in the last periodic crawl",
	})
	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Name: "build_info", Help: "Build information",
	}, []string{"version"})
	info.WithLabelValues(version).Set(1)

	c.registry.MustRegister(c.fetchedPosts, c.fetchErrors, c.outcomes, c.crawls, c.crawlDuration,
		c.httpRequests, c.httpDuration, c.trackedVendors, info,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return c
}

// ObserveFetch records a platform fetch result
func (c *Collector) ObserveFetch(platform domain.Platform, posts, errors int) {
	c.fetchedPosts.WithLabelValues(string(platform)).Add(float64(posts))
	c.fetchErrors.WithLabelValues(string(platform)).Add(float64(errors))
}

// ObserveOutcome records a reconciliation outcome
func (c *Collector) ObserveOutcome(outcome reconcile.Outcome) {
	c.outcomes.WithLabelValues(string(outcome)).Inc()
}

// ObserveCrawl records a vendor crawl
func (c *Collector) ObserveCrawl(duration time.Duration, failed bool) {
	status := "ok"
	if failed {
		status = "failed"
	}
	c.crawls.WithLabelValues(status).Inc()
	c.crawlDuration.Observe(duration.Seconds())
}

// SetTrackedVendors sets the number of vendors in the periodic crawl
func (c *Collector) SetTrackedVendors(n int) {
	c.trackedVendors.Set(float64(n))
}

// Handler returns the prometheus http handler for the private registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Middleware counts requests and measures their duration
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		c.httpRequests.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
		c.httpDuration.WithLabelValues(r.Method).Observe(time.Since(st).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
