package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	buildTotal           *prometheus.CounterVec
	buildDuration        *prometheus.HistogramVec
	buildInFlight        prometheus.Gauge
	queueLag             *prometheus.HistogramVec
	pagesPerIndex        *prometheus.HistogramVec
	summaryFallbackTotal *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	buildTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ks",
			Subsystem: "worker",
			Name:      "index_build_total",
			Help:      "Total index builds by outcome.",
		},
		[]string{"service", "status"},
	)
	buildDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ks",
			Subsystem: "worker",
			Name:      "index_build_duration_seconds",
			Help:      "Index build duration in seconds by outcome.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	buildInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ks",
			Subsystem: "worker",
			Name:      "index_build_in_flight",
			Help:      "Number of in-flight index builds.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ks",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between upload and index build start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)
	pagesPerIndex := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ks",
			Subsystem: "worker",
			Name:      "pages_per_index",
			Help:      "Distribution of page counts per built index.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
		},
		[]string{"service"},
	)
	summaryFallbackTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ks",
			Subsystem: "worker",
			Name:      "summary_fallback_total",
			Help:      "Total pages whose summary fell back to truncated text.",
		},
		[]string{"service"},
	)

	registry.MustRegister(buildTotal, buildDuration, buildInFlight, queueLag, pagesPerIndex, summaryFallbackTotal)

	return &WorkerMetrics{
		registry:             registry,
		buildTotal:           buildTotal,
		buildDuration:        buildDuration,
		buildInFlight:        buildInFlight,
		queueLag:             queueLag,
		pagesPerIndex:        pagesPerIndex,
		summaryFallbackTotal: summaryFallbackTotal,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartBuild() {
	m.buildInFlight.Inc()
}

func (m *WorkerMetrics) FinishBuild(service string, duration time.Duration, pageCount, summaryFallbacks int, err error) {
	m.buildInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.buildTotal.WithLabelValues(service, status).Inc()
	m.buildDuration.WithLabelValues(service, status).Observe(duration.Seconds())
	if err == nil {
		m.pagesPerIndex.WithLabelValues(service).Observe(float64(pageCount))
	}
	if summaryFallbacks > 0 {
		m.summaryFallbackTotal.WithLabelValues(service).Add(float64(summaryFallbacks))
	}
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}
