// Package prom implements the observability hooks with Prometheus metrics.
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/modelviewer/pkg/observability"
)

const namespace = "modelviewer"

// Hooks records generator, export, cache, and HTTP events as Prometheus
// metrics. It implements every hook interface of the observability package.
type Hooks struct {
	generations     *prometheus.CounterVec
	generateSeconds prometheus.Histogram
	generatedBytes  prometheus.Histogram

	exports       *prometheus.CounterVec
	exportSeconds *prometheus.HistogramVec

	cacheOps *prometheus.CounterVec

	requests       *prometheus.CounterVec
	requestSeconds *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Hooks {
	h := &Hooks{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "DOT generations by outcome (ok, absent, error).",
		}, []string{"outcome"}),
		generateSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_duration_seconds",
			Help:      "Time spent loading a model and generating DOT.",
			Buckets:   prometheus.DefBuckets,
		}),
		generatedBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generated_dot_bytes",
			Help:      "Size of generated DOT documents.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Graphviz renders by format, engine, and outcome.",
		}, []string{"format", "engine", "outcome"}),
		exportSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Time spent in Graphviz.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format", "engine"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache hits, misses, and writes.",
		}, []string{"key_type", "op"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		requestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		h.generations, h.generateSeconds, h.generatedBytes,
		h.exports, h.exportSeconds,
		h.cacheOps,
		h.requests, h.requestSeconds,
	)
	return h
}

// Install registers h for every hook category.
func (h *Hooks) Install() {
	observability.SetGeneratorHooks(h)
	observability.SetExportHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *Hooks) OnGenerateStart(context.Context, string) {}

func (h *Hooks) OnGenerateComplete(_ context.Context, _ string, size int, d time.Duration, err error) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case size == 0:
		outcome = "absent"
	}
	h.generations.WithLabelValues(outcome).Inc()
	h.generateSeconds.Observe(d.Seconds())
	if err == nil && size > 0 {
		h.generatedBytes.Observe(float64(size))
	}
}

func (h *Hooks) OnExportStart(context.Context, string, string) {}

func (h *Hooks) OnExportComplete(_ context.Context, format, engine string, _ int, d time.Duration, err error) {
	h.exports.WithLabelValues(format, engine, outcome(err)).Inc()
	h.exportSeconds.WithLabelValues(format, engine).Observe(d.Seconds())
}

func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (h *Hooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
}

func (h *Hooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	h.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.requestSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ observability.GeneratorHooks = (*Hooks)(nil)
	_ observability.ExportHooks    = (*Hooks)(nil)
	_ observability.CacheHooks     = (*Hooks)(nil)
	_ observability.HTTPHooks      = (*Hooks)(nil)
)
