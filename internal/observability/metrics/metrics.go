package metrics

import "github.com/prometheus/client_golang/prometheus"

// TriageMetrics exposes counters/histograms for the appointment workflow.
type TriageMetrics struct {
	requestsTotal  *prometheus.CounterVec
	responsesTotal *prometheus.CounterVec
	emailsTotal    *prometheus.CounterVec
	llmLatency     *prometheus.HistogramVec
}

func NewTriageMetrics(reg prometheus.Registerer) *TriageMetrics {
	m := &TriageMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triage",
			Subsystem: "appointments",
			Name:      "requests_total",
			Help:      "Total appointment scheduling requests",
		}, []string{"outcome"}),
		responsesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triage",
			Subsystem: "appointments",
			Name:      "responses_total",
			Help:      "Total doctor responses to appointment requests",
		}, []string{"action", "outcome"}),
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triage",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Total outbound notification emails",
		}, []string{"kind", "status"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "triage",
			Subsystem: "llm",
			Name:      "latency_seconds",
			Help:      "Latency of generative model calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.responsesTotal, m.emailsTotal, m.llmLatency)
	return m
}

func (m *TriageMetrics) ObserveRequest(outcome string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(outcome).Inc()
}

func (m *TriageMetrics) ObserveResponse(action, outcome string) {
	if m == nil {
		return
	}
	m.responsesTotal.WithLabelValues(action, outcome).Inc()
}

func (m *TriageMetrics) ObserveEmail(kind string, success bool) {
	if m == nil {
		return
	}
	status := "failure"
	if success {
		status = "success"
	}
	m.emailsTotal.WithLabelValues(kind, status).Inc()
}

func (m *TriageMetrics) ObserveLLMLatency(op string, seconds float64) {
	if m == nil {
		return
	}
	m.llmLatency.WithLabelValues(op).Observe(seconds)
}
