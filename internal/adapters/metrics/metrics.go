// Package metrics records Prometheus metrics for the HTTP surface and the
// scoring pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/example/enscope/internal/ports/secondary"
)

const namespace = "enscope"

// Recorder implements secondary.MetricsRecorder and provides gin middleware.
type Recorder struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	stepScores   *prometheus.CounterVec
	llmRequests  *prometheus.CounterVec
}

// New registers the collectors on reg. Pass a fresh prometheus.NewRegistry()
// in tests; registering twice on the same registry panics.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		// Labels: method, route (the matched gin path), status
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "route"}),

		// Labels: outcome (scored, failed)
		stepScores: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_scores_total",
			Help:      "Steps processed by batch scoring",
		}, []string{"outcome"}),

		// Labels: operation (assist, score, report), outcome (success, error)
		llmRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Calls to the text generation backend",
		}, []string{"operation", "outcome"}),
	}
}

// ObserveStepScore counts one step of a batch scoring run.
func (r *Recorder) ObserveStepScore(outcome string) {
	r.stepScores.WithLabelValues(outcome).Inc()
}

// ObserveLLMRequest counts one call to the text generator.
func (r *Recorder) ObserveLLMRequest(operation, outcome string) {
	r.llmRequests.WithLabelValues(operation, outcome).Inc()
}

// Middleware records request counts and latency per matched route.
// Unmatched paths share the "unmatched" route label.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		r.httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		r.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

var _ secondary.MetricsRecorder = (*Recorder)(nil)
