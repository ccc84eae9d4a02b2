package observability

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	jobsProcessed *prometheus.CounterVec
	jobsDuration  *prometheus.HistogramVec
	queueDepth    prometheus.Gauge

	cacheLookups *prometheus.CounterVec

	recomputeTotal    *prometheus.CounterVec
	recomputeDuration prometheus.Histogram

	server *http.Server
	mu     sync.Mutex
}

var (
	initOnce sync.Once
	shared   *Metrics
)

// Init builds the shared registry. METRICS_ENABLED=false disables the whole
// surface; callers then receive nil and every method degrades to a no-op at
// the middleware layer.
func Init() *Metrics {
	if strings.EqualFold(os.Getenv("METRICS_ENABLED"), "false") {
		return nil
	}
	initOnce.Do(func() {
		reg := prometheus.NewRegistry()
		factory := promauto.With(reg)

		shared = &Metrics{
			registry: reg,
			apiRequests: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route and status.",
			}, []string{"method", "route", "status"}),
			apiLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			}, []string{"method", "route"}),
			apiInflight: factory.NewGauge(prometheus.GaugeOpts{
				Name: "http_requests_inflight",
				Help: "HTTP requests currently being served.",
			}),
			jobsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "jobs_processed_total",
				Help: "Background tasks by name and status.",
			}, []string{"task", "status"}),
			jobsDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "jobs_duration_seconds",
				Help:    "Background task run time.",
				Buckets: prometheus.DefBuckets,
			}, []string{"task"}),
			queueDepth: factory.NewGauge(prometheus.GaugeOpts{
				Name: "jobs_queue_depth",
				Help: "Tasks waiting in the queue.",
			}),
			cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "statistics_cache_lookups_total",
				Help: "Statistics cache lookups by layer and outcome.",
			}, []string{"layer", "outcome"}),
			recomputeTotal: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "statistics_recompute_total",
				Help: "Statistics recomputations by kind and status.",
			}, []string{"kind", "status"}),
			recomputeDuration: factory.NewHistogram(prometheus.HistogramOpts{
				Name:    "statistics_recompute_duration_seconds",
				Help:    "Statistics recomputation time.",
				Buckets: prometheus.DefBuckets,
			}),
		}
	})
	return shared
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveJob(task string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.jobsProcessed.WithLabelValues(task, status).Inc()
	m.jobsDuration.WithLabelValues(task).Observe(dur.Seconds())
}

func (m *Metrics) SetQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(depth))
}

func (m *Metrics) IncCacheLookup(layer string, hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.cacheLookups.WithLabelValues(layer, outcome).Inc()
}

func (m *Metrics) ObserveRecompute(kind string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.recomputeTotal.WithLabelValues(kind, status).Inc()
	m.recomputeDuration.Observe(dur.Seconds())
}

// StartServer exposes /metrics on its own listener so the scrape endpoint
// stays off the API port.
func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil || addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	m.mu.Lock()
	m.server = &http.Server{Addr: addr, Handler: mux}
	srv := m.server
	m.mu.Unlock()

	go func() {
		log.Info("Metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Metrics server failed", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
