package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
)

// Metrics holds all Prometheus metrics for SkillBloom
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Content generation
	GenerationsTotal  *prometheus.CounterVec
	GenerationLatency *prometheus.HistogramVec

	// Learning
	LessonsCompleted prometheus.Counter
	FlowSessions     prometheus.Gauge
}

var (
	metricsOnce   sync.Once
	sharedMetrics *Metrics
)

// New creates and registers all Prometheus metrics. Registration happens once
// per process; later calls return the same instance.
func New() *Metrics {
	metricsOnce.Do(func() {
		sharedMetrics = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "skillbloom_http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "skillbloom_http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method"},
			),
			GenerationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "skillbloom_generations_total",
					Help: "Content generation calls by kind and outcome (ok or fallback)",
				},
				[]string{"kind", "outcome"},
			),
			GenerationLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "skillbloom_generation_duration_seconds",
					Help:    "Duration of content generation calls in seconds",
					Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 250ms to 32s
				},
				[]string{"kind"},
			),
			LessonsCompleted: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "skillbloom_lessons_completed_total",
					Help: "Lessons completed through the learn flow",
				},
			),
			FlowSessions: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "skillbloom_flow_sessions",
					Help: "Learn flow sessions currently held in memory",
				},
			),
		}
	})
	return sharedMetrics
}

// RecordGeneration counts one generation call.
func (m *Metrics) RecordGeneration(kind, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.GenerationsTotal.WithLabelValues(kind, outcome).Inc()
	m.GenerationLatency.WithLabelValues(kind).Observe(seconds)
}

// RecordRequest counts one served HTTP request.
func (m *Metrics) RecordRequest(method string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method).Observe(seconds)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordLessonCompleted counts one finished lesson.
func (m *Metrics) RecordLessonCompleted() {
	if m == nil {
		return
	}
	m.LessonsCompleted.Inc()
}

// SetFlowSessions reports how many learn sessions are held in memory.
func (m *Metrics) SetFlowSessions(n int) {
	if m == nil {
		return
	}
	m.FlowSessions.Set(float64(n))
}
