package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeFallback = "fallback"
	OutcomeSoftFail = "soft_fail"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ResolverSteps    *prometheus.CounterVec
	ResolverDuration prometheus.Histogram

	TokenRequests   *prometheus.CounterVec
	MeetingRequests *prometheus.CounterVec
	ChatRequests    *prometheus.CounterVec
	OutboundLatency *prometheus.HistogramVec

	PluginExecutions *prometheus.CounterVec
	EndpointLatency  *prometheus.HistogramVec
}

// New creates all metrics and registers them with reg. Pass
// prometheus.DefaultRegisterer in binaries and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ResolverSteps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onsightnow_resolver_steps_total",
			Help: "Record lookups performed while walking resolution chains, by entity type and outcome",
		}, []string{"entity_type", "outcome"}),
		ResolverDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "onsightnow_resolver_duration_seconds",
			Help:    "Duration of a full chain resolution",
			Buckets: prometheus.DefBuckets,
		}),
		// Token requests by outcome; every API call performs one.
		TokenRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onsightnow_token_requests_total",
			Help: "Client-credentials token requests by outcome",
		}, []string{"outcome"}),
		MeetingRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onsightnow_meeting_requests_total",
			Help: "Meeting create calls by outcome (success, soft_fail, failure)",
		}, []string{"outcome"}),
		ChatRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onsightnow_chat_requests_total",
			Help: "Ida chat calls by outcome",
		}, []string{"outcome"}),
		OutboundLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "onsightnow_outbound_latency_seconds",
			Help:    "Latency of calls to the Onsight NOW service by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		PluginExecutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onsightnow_plugin_executions_total",
			Help: "Plugin executions by plugin name and outcome",
		}, []string{"plugin", "outcome"}),
		EndpointLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "onsightnow_endpoint_latency_seconds",
			Help:    "Latency of action surface endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

func (m *Metrics) IncrementResolverStep(entityType, outcome string) {
	if m == nil {
		return
	}
	m.ResolverSteps.WithLabelValues(entityType, outcome).Inc()
}

func (m *Metrics) ObserveResolution(d time.Duration) {
	if m == nil {
		return
	}
	m.ResolverDuration.Observe(d.Seconds())
}

func (m *Metrics) IncrementTokenRequest(outcome string) {
	if m == nil {
		return
	}
	m.TokenRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementMeetingRequest(outcome string) {
	if m == nil {
		return
	}
	m.MeetingRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementChatRequest(outcome string) {
	if m == nil {
		return
	}
	m.ChatRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveOutbound(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.OutboundLatency.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) IncrementPluginExecution(plugin, outcome string) {
	if m == nil {
		return
	}
	m.PluginExecutions.WithLabelValues(plugin, outcome).Inc()
}

func (m *Metrics) ObserveEndpointLatency(endpoint string, seconds float64) {
	if m == nil {
		return
	}
	m.EndpointLatency.WithLabelValues(endpoint).Observe(seconds)
}
