package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exposed at /metrics.
var Registry = prometheus.NewRegistry()

var (
	generationStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resume_generation_started_total",
		Help: "Total resume generations started",
	})
	generationCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resume_generation_completed_total",
		Help: "Total resume generations completed",
	})
	generationFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_generation_failed_total",
		Help: "Total resume generations failed by state",
	}, []string{"state"})
	generationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "resume_generation_duration_seconds",
		Help:    "Resume generation duration in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	})
	selectorFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bullet_selector_fallback_total",
		Help: "Bullet selections that fell back to the original pool",
	}, []string{"reason"})
	fetchOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_description_fetch_total",
		Help: "Job description fetches by outcome",
	}, []string{"outcome"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		generationStarted,
		generationCompleted,
		generationFailed,
		generationDuration,
		selectorFallbacks,
		fetchOutcomes,
	)
}

// IncGenerationStarted increments the started counter.
func IncGenerationStarted() {
	generationStarted.Inc()
}

// IncGenerationCompleted increments the completed counter.
func IncGenerationCompleted() {
	generationCompleted.Inc()
}

// IncGenerationFailed increments the failed counter for the state that failed.
func IncGenerationFailed(state string) {
	generationFailed.WithLabelValues(state).Inc()
}

// ObserveGenerationDuration records a generation duration.
func ObserveGenerationDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	generationDuration.Observe(d.Seconds())
}

// IncSelectorFallback counts a selector fallback by reason.
func IncSelectorFallback(reason string) {
	selectorFallbacks.WithLabelValues(reason).Inc()
}

// IncFetch counts a job description fetch outcome.
func IncFetch(outcome string) {
	fetchOutcomes.WithLabelValues(outcome).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
