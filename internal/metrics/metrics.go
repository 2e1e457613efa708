// Package metrics exports Prometheus counters and histograms for the HTTP
// API, LLM calls and domain events. All methods are safe on a nil *Metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/levelup/internal/llm"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	LLMRequests *prometheus.CounterVec
	LLMLatency  *prometheus.HistogramVec
	LLMTokens   *prometheus.CounterVec

	AssessmentsCreated   *prometheus.CounterVec
	AssessmentsCompleted prometheus.Counter
	TopicVerdicts        *prometheus.CounterVec
	QuizzesCreated       prometheus.Counter
	AttemptsSubmitted    prometheus.Counter
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"method", "endpoint"},
		),
		LLMRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_requests_total",
				Help: "Total number of LLM provider calls",
			},
			[]string{"purpose", "model", "outcome"},
		),
		LLMLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llm_request_duration_seconds",
				Help:    "Latency of LLM provider calls",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"purpose"},
		),
		LLMTokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_tokens_total",
				Help: "Tokens consumed by LLM provider calls",
			},
			[]string{"model", "direction"},
		),
		AssessmentsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assessments_created_total",
				Help: "Placement assessments created, by composition policy",
			},
			[]string{"policy"},
		),
		AssessmentsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "assessments_completed_total",
			Help: "Placement assessments submitted and scored",
		}),
		TopicVerdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "topic_gate_verdicts_total",
				Help: "Topic gate decisions",
			},
			[]string{"verdict"},
		),
		QuizzesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quizzes_created_total",
			Help: "Quizzes generated",
		}),
		AttemptsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_attempts_total",
			Help: "Quiz attempts submitted",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestCounter,
		m.RequestDuration,
		m.LLMRequests,
		m.LLMLatency,
		m.LLMTokens,
		m.AssessmentsCreated,
		m.AssessmentsCompleted,
		m.TopicVerdicts,
		m.QuizzesCreated,
		m.AttemptsSubmitted,
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

var _ llm.Observer = (*Metrics)(nil)

// ObserveLLMRequest implements llm.Observer.
func (m *Metrics) ObserveLLMRequest(purpose, model string, success bool, latency time.Duration, usage llm.Usage) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "error"
	}
	m.LLMRequests.WithLabelValues(purpose, model, outcome).Inc()
	m.LLMLatency.WithLabelValues(purpose).Observe(latency.Seconds())
	if usage.InputTokens > 0 {
		m.LLMTokens.WithLabelValues(model, "input").Add(float64(usage.InputTokens))
	}
	if usage.OutputTokens > 0 {
		m.LLMTokens.WithLabelValues(model, "output").Add(float64(usage.OutputTokens))
	}
}

func (m *Metrics) AssessmentCreated(policy string) {
	if m == nil {
		return
	}
	m.AssessmentsCreated.WithLabelValues(policy).Inc()
}

func (m *Metrics) AssessmentCompleted() {
	if m == nil {
		return
	}
	m.AssessmentsCompleted.Inc()
}

// TopicVerdict counts one topic gate decision.
func (m *Metrics) TopicVerdict(appropriate bool) {
	if m == nil {
		return
	}
	verdict := "accepted"
	if !appropriate {
		verdict = "rejected"
	}
	m.TopicVerdicts.WithLabelValues(verdict).Inc()
}

func (m *Metrics) QuizCreated() {
	if m == nil {
		return
	}
	m.QuizzesCreated.Inc()
}

func (m *Metrics) AttemptSubmitted() {
	if m == nil {
		return
	}
	m.AttemptsSubmitted.Inc()
}

// Middleware records request counts and durations by route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
